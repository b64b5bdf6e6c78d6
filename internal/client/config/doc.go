// Package config loads runtime configuration for the portal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in .yaml
//     or .yml are decoded as YAML, anything else as JSON.
//  3. PORTAL_* environment variables.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a, -api string        base URL of the account API
//	-d, -data-dir string   directory holding portal.db and portal.key
//	-t, -timeout int       HTTP request timeout (seconds)
//	-r, -redirect int      delay before leaving the registration success view (milliseconds)
//	-l, -log-level string  debug | info | warn | error
//	-f, -log-format string text | json | zap
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "2s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://accounts.example.com/api",
//	  "data_dir": "/home/me/.config/gophportal",
//	  "request_timeout": "15s",
//	  "redirect_delay": "2s",
//	  "document_type_id": 1,
//	  "country_id": 179,
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
package config
