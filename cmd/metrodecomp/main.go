// Command metrodecomp decompiles a Metro-bundled React Native JavaScript
// bundle back into one source file per module. CLI parsing is a flat,
// hand-rolled flag loop rather than a third-party flag library; the
// surface is small and stable, so this file stays intentionally thin.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/metrodecomp/metrodecomp/internal/cache"
	"github.com/metrodecomp/metrodecomp/internal/config"
	"github.com/metrodecomp/metrodecomp/internal/decompilers"
	"github.com/metrodecomp/metrodecomp/internal/editors"
	"github.com/metrodecomp/metrodecomp/internal/facade"
	"github.com/metrodecomp/metrodecomp/internal/graph"
	"github.com/metrodecomp/metrodecomp/internal/ignore"
	"github.com/metrodecomp/metrodecomp/internal/lint"
	"github.com/metrodecomp/metrodecomp/internal/logger"
	"github.com/metrodecomp/metrodecomp/internal/module"
	"github.com/metrodecomp/metrodecomp/internal/plugin"
	"github.com/metrodecomp/metrodecomp/internal/router"
	"github.com/metrodecomp/metrodecomp/internal/taggers"
)

// NoModulesFoundError is fatal with a user-facing diagnosis of likely
// causes.
type NoModulesFoundError struct{}

func (NoModulesFoundError) Error() string {
	return "no modules found: the input doesn't look like a Metro bundle " +
		"(no __d(...) registrations were found). Likely causes: the file " +
		"is not a bundle at all, it was produced by a different bundler, " +
		"or it has been minified in a way that renamed __d itself."
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	env := config.LoadDotEnv("")
	opts.ApplyEnvDefaults(env)
	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewStderrLog(levelOrDefault(opts.LogLevel))
	var perfSink *logger.PerfSink
	if opts.Performance {
		perfSink = logger.NewPerfSink(filepath.Join(opts.Out, "performance.log"), 10, 3)
		if perfSink != nil {
			defer perfSink.Close()
		}
		printPerfBanner(os.Stdout)
	}

	if err := run(opts, log, perfSink); err != nil {
		log.AddMsg(logger.Msg{Kind: logger.Error, Text: err.Error()})
		os.Exit(1)
	}
}

// printPerfBanner announces where the --performance report is being
// written, wrapped to the controlling terminal's width when stdout is a
// TTY (logger.GetTerminalInfo). Outside a TTY (CI, piped output) it falls
// back to a fixed width rather than guessing.
func printPerfBanner(out *os.File) {
	info := logger.GetTerminalInfo(out)
	width := info.Width
	if !info.IsTTY || width <= 0 {
		width = 80
	}
	fmt.Fprintln(out, strings.Repeat("-", width))
	fmt.Fprintln(out, "performance report: see performance.log in the output folder")
	fmt.Fprintln(out, strings.Repeat("-", width))
}

func levelOrDefault(s string) logger.LogLevel {
	if level, ok := logger.LevelFromString(s); ok {
		return level
	}
	return logger.LevelInfo
}

func run(opts *config.Options, log logger.Log, perfSink *logger.PerfSink) error {
	bundleBytes, err := os.ReadFile(opts.In)
	if err != nil {
		return err
	}
	bundleText := string(bundleBytes)
	if opts.BundlesFolder != "" {
		bundleText += readBundlesFolder(opts.BundlesFolder)
	}

	program, err := facade.Parse(bundleText, opts.In)
	if err != nil {
		return err
	}

	g, buildErrs := graph.Build(&program)
	for _, e := range buildErrs {
		log.AddMsg(logger.Msg{Kind: logger.Warning, Text: e.Error()})
	}
	if g.Len() == 0 {
		return NoModulesFoundError{}
	}

	checksum := cache.Checksum(bundleText)
	cacheKey := cacheKeyFor(opts)
	backend, err := cacheBackendFor(opts)
	if err != nil {
		return err
	}
	store, _ := cache.NewStore(backend, 32)

	if opts.AggressiveCache {
		if doc, err := store.Load(context.Background(), cacheKey, checksum); err == nil {
			for _, cm := range doc.Modules {
				if cm.Ignored && !cm.IsNpmModule {
					cache.ApplyAggressive(g, cm)
				}
			}
		} else {
			log.AddMsg(logger.Msg{Kind: logger.Warning, Text: err.Error()})
		}
	}

	taggerPlugins := append(taggers.FingerprintTaggers(), taggers.StructuralTaggers()...)
	runPass(g, plugin.Tagger, taggerPlugins, log, perfSink)

	ignore.PropagateIgnored(g)

	if opts.HasEntry {
		if err := ignore.RestrictToEntryClosure(g, opts.Entry, opts.AggressiveCache); err != nil {
			return err
		}
	}

	rewritePlugins := append(editors.All(), decompilers.All()...)
	runPass(g, plugin.Editor, rewritePlugins, log, perfSink)
	runPass(g, plugin.Decompiler, rewritePlugins, log, perfSink)

	var formatter lint.Formatter = lint.NoopFormatter{}
	if opts.NoEslint {
		formatter = nil
	}
	if err := writeModules(g, opts, formatter); err != nil {
		return err
	}

	if opts.HasEntry {
		doc := cache.BuildDocument(g, checksum)
		if err := store.SaveDocument(context.Background(), cacheKey, doc); err != nil {
			log.AddMsg(logger.Msg{Kind: logger.Warning, Text: "cache save failed: " + err.Error()})
		}
	}

	if opts.Verbose {
		printDependencySummary(g, log)
	}

	return nil
}

// runPass builds a Router for one pass and drives it over every
// non-ignored module in the graph. Taggers run before
// ignore propagation sees their results, so a module tagged ignored
// mid-pass is simply skipped in subsequent Run calls within the same
// loop, not retroactively re-visited.
func runPass(g *graph.Graph, pass plugin.Pass, plugins []plugin.Plugin, log logger.Log, perfSink *logger.PerfSink) {
	r := router.New(pass, plugins)
	for _, m := range g.All() {
		if m.Ignored {
			continue
		}
		if err := r.Run(g, m); err != nil {
			log.AddMsg(logger.Msg{Kind: logger.Error, Text: err.Error()})
		}
	}
	if perfSink == nil {
		return
	}
	var rows []logger.PerfRow
	for _, row := range r.PerfRows() {
		rows = append(rows, logger.PerfRow{Plugin: row.Plugin, Pass: row.Pass.String(), Elapsed: row.Elapsed})
	}
	if len(rows) > 0 {
		perfSink.WriteReport("bundle", rows)
	}
}

// writeModules emits one file per non-ignored module. When
// formatter is non-nil (--noEslint was not passed) each module's printed
// source is run through it before writing; formatter is the seam for a
// real lint/format pass, and the default NoopFormatter leaves content
// untouched.
func writeModules(g *graph.Graph, opts *config.Options, formatter lint.Formatter) error {
	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return err
	}
	for _, m := range sortedByID(g) {
		if m.Ignored && !opts.DecompileIgnored {
			continue
		}
		name := strconv.Itoa(m.ID)
		if m.Name != "" {
			name = m.Name
		}
		path := filepath.Join(opts.Out, name+".js")
		content := m.Print()
		if formatter != nil {
			formatted, err := formatter.Format(content)
			if err != nil {
				return err
			}
			content = formatted
		}
		if err := writeIfChanged(path, content); err != nil {
			return err
		}
	}
	return nil
}

// writeIfChanged writes only when the file is absent or textually
// different from the generated content, preserving filesystem timestamps
// on unchanged output.
func writeIfChanged(path, content string) error {
	existing, err := os.ReadFile(path)
	if err == nil && string(existing) == content {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// sortedByID returns the graph's modules ordered by ascending moduleId so
// the written file set and the verbose summary are reproducible across
// runs regardless of registration order.
func sortedByID(g *graph.Graph) []*module.Module {
	modules := g.All()
	sort.Slice(modules, func(i, j int) bool { return modules[i].ID < modules[j].ID })
	return modules
}

func printDependencySummary(g *graph.Graph, log logger.Log) {
	var b strings.Builder
	for _, m := range sortedByID(g) {
		fmt.Fprintf(&b, "%d %v ignored=%v npm=%v\n", m.ID, m.Dependencies, m.Ignored, m.IsNpmModule)
	}
	log.AddMsg(logger.Msg{Kind: logger.Info, Text: b.String()})
}

func readBundlesFolder(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".js") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String()
}

func cacheKeyFor(opts *config.Options) string {
	if opts.HasEntry {
		return strconv.Itoa(opts.Entry)
	}
	return "null"
}

// cacheBackendFor builds the cache.Backend the run should persist through:
// local disk by default, or an S3-compatible bucket when --cacheBucket (and
// its endpoint/credential companions) were supplied.
func cacheBackendFor(opts *config.Options) (cache.Backend, error) {
	if opts.CacheBucket == "" {
		return &cache.LocalBackend{Dir: opts.Out}, nil
	}
	client, err := minio.New(opts.CacheEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.CacheAccessKey, opts.CacheSecretKey, ""),
		Secure: opts.CacheUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 cache client: %w", err)
	}
	return &cache.RemoteBackend{Client: client, Bucket: opts.CacheBucket}, nil
}

func parseArgs(args []string) (*config.Options, error) {
	opts := &config.Options{Entry: -1}
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			return nil, fmt.Errorf("unrecognized argument %q", arg)
		}
		kv := strings.SplitN(strings.TrimPrefix(arg, "--"), "=", 2)
		key := kv[0]
		value := ""
		if len(kv) == 2 {
			value = kv[1]
		}
		switch key {
		case "in":
			opts.In = value
		case "out":
			opts.Out = value
		case "bundlesFolder":
			opts.BundlesFolder = value
		case "entry":
			id, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("--entry must be a numeric moduleId: %w", err)
			}
			opts.Entry = id
			opts.HasEntry = true
		case "performance":
			opts.Performance = true
		case "verbose":
			opts.Verbose = true
		case "decompileIgnored":
			opts.DecompileIgnored = true
		case "aggressiveCache":
			opts.AggressiveCache = true
		case "noEslint":
			opts.NoEslint = true
		case "logLevel":
			opts.LogLevel = value
		case "cacheBucket":
			opts.CacheBucket = value
		case "cacheEndpoint":
			opts.CacheEndpoint = value
		case "cacheAccessKey":
			opts.CacheAccessKey = value
		case "cacheSecretKey":
			opts.CacheSecretKey = value
		case "cacheUseSSL":
			opts.CacheUseSSL = true
		default:
			return nil, fmt.Errorf("unrecognized flag --%s", key)
		}
	}
	return opts, nil
}
