// Package service routes tool calls to providers.
//
// The registry is an immutable index built from a fixed set of providers.
// It resolves service-qualified names ("math.add") and legacy aliases,
// reports every call to an Observer, and ranks tools against a free-text
// intent for discovery.
//
// Example Usage:
//
//	registry, err := service.NewRegistry(logger, metrics, mathProvider)
//	tools := registry.Discover("average of numbers", 5)
//	result := registry.Execute(ctx, "mean", map[string]interface{}{"numbers": []interface{}{1, 2, 3}})
package service
