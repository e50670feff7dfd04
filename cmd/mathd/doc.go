// Command mathd serves deterministic math tools to AI agents.
package main
