// Package refdata loads the static reference tables.
//
// The default tables are embedded from default.toml. An optional override
// file in TOML or YAML is layered on top: sections present in the override
// replace the defaults, while bodies and dasha systems merge by key. Every
// load is validated before it becomes current, and a Watcher reloads the
// override file when it changes on disk.
package refdata
