package env

import (
	"os"
	"strings"
)

func IsDev() bool {
	v := strings.ToLower(os.Getenv("SDUI_DEV"))
	return v == "1" || v == "true" || v == "yes"
}
