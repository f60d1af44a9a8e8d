package source

import (
	gjson "github.com/mgavaghan/GavaghanJSON"
	drvgojson "github.com/mgavaghan/GavaghanJSON/source/gojson"
)

// init in a separate package to avoid import cycle in root. This sets go-json as default driver.
func init() { gjson.SetDriver(drvgojson.Driver()) }
