package acquirer

import (
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/nguyentantai21042004/digest-flow/internal/cache"
	"github.com/nguyentantai21042004/digest-flow/internal/config"
	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/pkg/executor"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"

// maxPageSize caps the bytes read from HTML pages, feeds and remote text files
const maxPageSize = 16 << 20

type implAcquirer struct {
	ytdlp            config.YtDlpConfig
	store            *cache.Store
	tempDir          string
	client           *http.Client
	feeds            *gofeed.Parser
	pocketCastsHosts []string
	executor         executor.Executor
	logger           logger.Logger
}

// New creates an Acquirer that writes audio artifacts into store
func New(cfg *config.Config, store *cache.Store, tempDir string, exec executor.Executor, log logger.Logger) Acquirer {
	return newAcquirer(cfg, store, tempDir, &http.Client{}, exec, log)
}

func newAcquirer(cfg *config.Config, store *cache.Store, tempDir string, client *http.Client, exec executor.Executor, log logger.Logger) *implAcquirer {
	return &implAcquirer{
		ytdlp:            cfg.YtDlp,
		store:            store,
		tempDir:          tempDir,
		client:           client,
		feeds:            gofeed.NewParser(),
		pocketCastsHosts: []string{"pca.st", "pocketcasts.com"},
		executor:         exec,
		logger:           log,
	}
}
