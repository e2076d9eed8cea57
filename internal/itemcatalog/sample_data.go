package itemcatalog

import (
	"crop-asr-qa/backend/internal/coreengine/sessionengine"
)

// SampleItems returns the built-in demo crop list so testers can try the flow
// without uploading a file.
func SampleItems(language string) []sessionengine.TestItem {
	return []sessionengine.TestItem{
		{SerialNumber: 1, Code: "RICE001", Label: "Basmati Rice", Language: language},
		{SerialNumber: 2, Code: "WHEAT001", Label: "Wheat", Language: language},
		{SerialNumber: 3, Code: "CORN001", Label: "Corn", Language: language},
	}
}
