package utils

import (
	"runtime/debug"
)

const (
	unknownVersion       = "unknown"
	develVersion         = "(devel)"
	revisionSettingKey   = "vcs.revision"
	modifiedSettingKey   = "vcs.modified"
	shortRevisionLength  = 12
	modifiedVersionLabel = "-dirty"
)

// GetApplicationVersion reports the module version recorded in the binary.
// Development builds fall back to the embedded VCS revision.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	return versionFromBuildInfo(buildInfo)
}

func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}

	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case revisionSettingKey:
			revision = setting.Value
		case modifiedSettingKey:
			modified = setting.Value == "true"
		}
	}
	if revision == EmptyString {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	if modified {
		revision += modifiedVersionLabel
	}
	return revision
}
