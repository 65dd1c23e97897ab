// ABOUTME: Embeds the instruction documents into the binary via go:embed
// ABOUTME: The default UI building template is parsed and validated once on first use

package instructions

import (
	"embed"
	"sync"
)

//go:embed templates/*.md
var embeddedFS embed.FS

const uiBuildingFile = "templates/ui-building-instructions.md"

var defaultTemplate = sync.OnceValue(func() *Template {
	data, err := embeddedFS.ReadFile(uiBuildingFile)
	if err != nil {
		panic("instructions: read embedded template: " + err.Error())
	}
	return MustLoad(string(data))
})

// UIBuilding returns the embedded UI building instructions template.
func UIBuilding() *Template {
	return defaultTemplate()
}
