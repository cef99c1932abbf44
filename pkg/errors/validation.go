package errors

import "regexp"

// maxPackageNameLen is the longest crate name crates.io accepts.
const maxPackageNameLen = 64

// packageNameRe matches ASCII alphanumerics, '-' and '_', starting with a letter.
var packageNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// ValidatePackageName rejects names crates.io could never serve before any
// request is made. This also keeps path separators and traversal sequences
// out of the request URL.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}
	if len(name) > maxPackageNameLen {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageNameLen)
	}
	if !packageNameRe.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid package name %q", name)
	}
	return nil
}
