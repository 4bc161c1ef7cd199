// Package marquee exposes project-level metadata shared by the CLI and
// build tooling.
package marquee

// Version is the marquee release version. Bumped manually when tagging.
const Version = "0.2.0"
