package definition

import (
	"embed"
	"io/fs"
)

// ContactID is the id of the embedded contact form definition.
const ContactID = "contact"

//go:embed forms/*.yaml
var embeddedForms embed.FS

// EmbeddedFS returns the bundled definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		panic(err)
	}
	return sub
}

// Default returns the embedded contact form definition.
func Default() (Definition, error) {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		return Definition{}, err
	}
	return store.Definition(ContactID)
}
