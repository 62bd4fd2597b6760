package console

import "strings"

// semanticMap stores semantic tag -> direct style mappings (e.g., "version" -> "cyan")
var semanticMap = map[string]string{
	"-":                      "-",
	"trace":                  "blue",
	"debug":                  "blue",
	"info":                   "blue",
	"notice":                 "green",
	"warn":                   "yellow",
	"error":                  "red",
	"fatal":                  "white:red",
	"fatalfooter":            "-",
	"traceheader":            "red",
	"tracefooter":            "red",
	"traceframenumber":       "red",
	"traceframelines":        "red",
	"tracesourcefile":        "cyan::b",
	"tracelinenumber":        "yellow::b",
	"tracefunction":          "green::b",
	"app":                    "cyan",
	"applicationname":        "cyan::b",
	"branch":                 "cyan",
	"failingcommand":         "red",
	"file":                   "cyan::b",
	"folder":                 "cyan::b",
	"runningcommand":         "green::b",
	"update":                 "green",
	"url":                    "cyan::u",
	"usercommand":            "yellow::b",
	"usercommanderror":       "red::u",
	"usercommanderrormarker": "red",
	"var":                    "magenta",
	"version":                "cyan",
	"yes":                    "green",
	"no":                     "red",
	"usagecommand":           "yellow::b",
	"usageoption":            "yellow",
	"usageapp":               "cyan",
	"usagefile":              "cyan::b",
}

// RegisterSemanticTag adds or replaces a semantic tag definition.
func RegisterSemanticTag(name, style string) {
	semanticMap[strings.ToLower(name)] = style
}
