package content

import (
	"fmt"
	"strings"
)

// Citation is a source the generator reports having consulted.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Label returns the title, or the URI when the title is empty.
func (c Citation) Label() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}

	return c.URI
}

// String formats the citation as "title (uri)".
func (c Citation) String() string {
	return fmt.Sprintf("%s (%s)", c.Title, c.URI)
}
