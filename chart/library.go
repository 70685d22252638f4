package chart

import (
	"sync"
	"sync/atomic"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Library resolves the echarts script assets a page has to include.
// Loading happens once per view session, after the first successful fetch.
type Library struct {
	AssetsHost string
	// OnLoad runs once, right after initialization
	OnLoad func()

	once   sync.Once
	loaded atomic.Bool
	loads  atomic.Int32
	assets []string
}

func NewLibrary(assetsHost string) *Library {
	return &Library{AssetsHost: assetsHost}
}

// Load initializes the library on first use and returns the script URLs.
// Later calls return the same URLs without reinitializing.
func (l *Library) Load() []string {
	l.once.Do(func() {
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{AssetsHost: l.AssetsHost}))
		bar.Validate()

		values := bar.GetAssets().JSAssets.Values
		l.assets = append([]string(nil), values...)
		l.loads.Add(1)
		l.loaded.Store(true)
		if l.OnLoad != nil {
			l.OnLoad()
		}
	})
	return l.Assets()
}

func (l *Library) Loaded() bool {
	return l.loaded.Load()
}

// Assets returns the script URLs, nil until Load ran
func (l *Library) Assets() []string {
	if !l.loaded.Load() {
		return nil
	}
	return append([]string(nil), l.assets...)
}

// Loads counts initializations; it never exceeds one
func (l *Library) Loads() int {
	return int(l.loads.Load())
}
