// Package taggers holds the concrete pattern recognizers: fingerprint
// taggers that match cheap regexes against
// minified source, and structural taggers that walk the AST for a
// library's known shape. Fingerprint taggers run at lower Priority values
// so they see the module before any structural tagger has a chance to
// commit to a guess.
package taggers

import (
	"regexp"

	"github.com/metrodecomp/metrodecomp/internal/plugin"
)

// Fingerprint is one regex-based NPM-package recognizer matched against a
// module's OriginalCode.
type Fingerprint struct {
	PackageName string
	Pattern     *regexp.Regexp
}

// toConsumableArrayPattern recognizes the stable minified shape of
// @babel/runtime/helpers/toConsumableArray:
// var _=_(_[0]),_=_(_[1]),...;_.exports=function(_){return _(_)||_(_)||_(_)||_();}
var toConsumableArrayPattern = regexp.MustCompile(
	`(?s)var\s+\w+\s*=\s*\w+\(\w+\[0\]\)\s*,\s*\w+\s*=\s*\w+\(\w+\[1\]\).*?\.exports\s*=\s*function\s*\(\w+\)\s*\{\s*return\s+\w+\(\w*\)\s*\|\|\s*\w+\(\w*\)\s*\|\|\s*\w+\(\w*\)\s*\|\|\s*\w+\(\w*\)\s*;?\s*\}`,
)

// slicedToArrayPattern recognizes @babel/runtime/helpers/slicedToArray's
// equally stable minified dispatcher shape: three candidate strategies
// tried in sequence (array check, iterator check, non-iterable throw).
var slicedToArrayPattern = regexp.MustCompile(
	`(?s)\.exports\s*=\s*function\s*\(\w+\s*,\s*\w+\)\s*\{\s*return\s+\w+\(\w*\)\s*\|\|\s*\w+\(\w+\s*,\s*\w+\)\s*\|\|\s*\w+\(\w*\)\s*;?\s*\}`,
)

// interopRequireDefaultPattern recognizes @babel/runtime/helpers/interopRequireDefault:
// module.exports = function(obj) { return obj && obj.__esModule ? obj : { default: obj }; }
var interopRequireDefaultPattern = regexp.MustCompile(
	`(?s)\.exports\s*=\s*function\s*\(\w+\)\s*\{\s*return\s+\w+\s*&&\s*\w+\.__esModule\s*\?\s*\w+\s*:\s*\{\s*(?:"default"|'default'|default)\s*:\s*\w+\s*\}\s*;?\s*\}`,
)

// Fingerprints is the catalog of fingerprint taggers this decompiler
// ships. The catalog is data, not code: new minifier output means new
// entries here, not branches elsewhere.
var Fingerprints = []Fingerprint{
	{PackageName: "@babel/runtime/helpers/toConsumableArray", Pattern: toConsumableArrayPattern},
	{PackageName: "@babel/runtime/helpers/slicedToArray", Pattern: slicedToArrayPattern},
	{PackageName: "@babel/runtime/helpers/interopRequireDefault", Pattern: interopRequireDefaultPattern},
}

// FingerprintTaggers returns one whole-module plugin per catalog entry.
// Fingerprint taggers are cheap (a single regex match) and run before
// structural taggers, at ascending priority in catalog order so the tie-
// break rule (on a priority tie the first in definition order wins)
// resolves predictably when two fingerprints could both match
// pathological input.
func FingerprintTaggers() []plugin.Plugin {
	plugins := make([]plugin.Plugin, 0, len(Fingerprints))
	for i, fp := range Fingerprints {
		fp := fp
		plugins = append(plugins, plugin.Plugin{
			Name:      "fingerprint:" + fp.PackageName,
			Pass:      plugin.Tagger,
			Priority:  i,
			NodeKinds: wholeModule,
			Evaluate: func(ctx plugin.Context) {
				if ctx.Module.IsNpmModule || ctx.Module.Ignored {
					return
				}
				if fp.Pattern.MatchString(ctx.Module.OriginalCode) {
					ctx.Module.TagAsNpmModule(fp.PackageName)
				}
			},
		})
	}
	return plugins
}
