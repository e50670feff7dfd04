package types

// Version is reported by the banner endpoint, the MCP handshake and the CLI
const Version = "1.0.0"

// ServerName identifies this server to clients
const ServerName = "mathd"
