package function

import (
	"regexp"
	"strings"
)

// A shaded UDF class name carries a synthetic version-encoding namespace
// token before the first dot, e.g.
//
//	shadedudf_1_0_0.com.acme.udf.MyFunction
//
// The token lets several versions of the same logical function ship under
// different artifact names. Each version component is either a number or
// the wildcard `x`.
var (
	shadingTag           = "shadedudf"
	shadingPrefixPattern = regexp.MustCompile(`^shadedudf_(\d+|x)_(\d+|x)_(\d+|x)$`)
)

// SetShadingTag replaces the tag recognized in shading prefixes. Not safe
// to call concurrently with resolution; set it during startup.
func SetShadingTag(tag string) {
	shadingTag = tag
	shadingPrefixPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(tag) + `_(\d+|x)_(\d+|x)_(\d+|x)$`)
}

// IsShaded reports whether className starts with a shading prefix.
func IsShaded(className string) bool {
	if className == "" {
		return false
	}
	dot := strings.IndexByte(className, '.')
	if dot < 0 {
		return false
	}
	return shadingPrefixPattern.MatchString(className[:dot])
}

// RemoveShadingPrefix strips the shading prefix from className if one is
// present, returning the underlying class name.
func RemoveShadingPrefix(className string) string {
	if IsShaded(className) {
		return className[strings.IndexByte(className, '.')+1:]
	}
	return className
}

// ShadedName prepends a shading prefix with the given version components.
func ShadedName(className, major, minor, patch string) string {
	return shadingTag + "_" + major + "_" + minor + "_" + patch + "." + className
}

// VersionedFunctionName derives the version-suffixed function name for an
// alias, e.g. alias "myFunc" with class "shadedudf_1_0_0.com.acme.MyClass"
// yields "myFunc_1_0_0". An unshaded class name yields the alias as is.
func VersionedFunctionName(alias, className string) string {
	dot := strings.IndexByte(className, '.')
	if dot < 0 {
		return alias
	}
	m := shadingPrefixPattern.FindStringSubmatch(className[:dot])
	if m == nil {
		return alias
	}
	return strings.Join([]string{alias, m[1], m[2], m[3]}, "_")
}
