package core

import "fmt"

// ContentETag returns a strong validator for a rendered response body.
func ContentETag(content []byte) string {
	result := 0
	for _, b := range content {
		result = (result*31 + int(b)) % 1000000007
	}
	return fmt.Sprintf(`"%x-%d"`, len(content), result)
}
