package core

import "time"

const (
	ProfileLookupURL = "https://api.mojang.com/users/profiles/minecraft"
	NotFoundMarker   = "Couldn't find any profile"

	DefaultInputFile  = "names.txt"
	DefaultOutputFile = "available_names.txt"

	HTTPRequestTimeoutSeconds = 10

	MinTimeout = 1
	MaxTimeout = 120

	LowTimeoutWarningThreshold = 3

	BaseDelay     = 800 * time.Millisecond
	CooldownDelay = 2 * time.Second
	CooldownEvery = 50

	ETAEvery = 10

	ReportTimestampLayout = "2006-01-02 15:04:05"

	Version     = "1.0.0"
	Description = "Minecraft username availability checker"
)
