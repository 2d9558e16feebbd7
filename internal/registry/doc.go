// Package registry provides the key/value parameter bag shared by component
// configuration, workflow transition options, and form data.
//
// A Registry is a plain map with typed accessors that tolerate the loose value
// shapes produced by TOML, JSON, and form submissions (numbers as strings,
// booleans as integers). From normalizes arbitrary payloads (maps, structs,
// registries) into a Registry so callers read named fields through one
// accessor regardless of how the data arrived.
package registry
