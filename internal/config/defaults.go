package config

var defaults = map[string]any{
	"log_level": "info",
	"listen":    ":8081",

	"public_dir":       "./public",
	"allowed_networks": "",
	"metrics":          true,

	"storage.type":        StorageMemory,
	"storage.sqlite.path": ":memory:",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
