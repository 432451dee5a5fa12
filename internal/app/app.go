package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/deckcheck/internal/common"
	"github.com/ternarybob/deckcheck/internal/handlers"
	"github.com/ternarybob/deckcheck/internal/interfaces"
	"github.com/ternarybob/deckcheck/internal/services/extract"
	"github.com/ternarybob/deckcheck/internal/services/feedback"
	"github.com/ternarybob/deckcheck/internal/services/llm"
	"github.com/ternarybob/deckcheck/internal/services/review"
	"github.com/ternarybob/deckcheck/internal/services/spelling"
	"github.com/ternarybob/deckcheck/internal/storage/badger"
)

// App wires together storage, model clients, services and handlers.
// Model clients and the dictionary are optional: when one fails to
// initialize the corresponding analysis pass is disabled and the rest of
// the pipeline keeps working.
type App struct {
	Config  *common.Config
	Storage *badger.Manager

	TextModel   interfaces.TextModel
	VisionModel interfaces.VisionModel
	Dictionary  interfaces.Dictionary

	ExtractService  *extract.Service
	ReviewService   *review.Service
	FeedbackService *feedback.Service

	ReviewHandler   *handlers.ReviewHandler
	FeedbackHandler *handlers.FeedbackHandler
	APIHandler      *handlers.APIHandler

	logger arbor.ILogger
}

// New builds the application graph. Storage failure is fatal; model client
// and dictionary failures degrade the service instead of stopping it.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: config,
		logger: logger,
	}

	storage, err := badger.NewManager(logger, &config.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.Storage = storage

	a.initDictionary()
	a.initModels()

	a.ExtractService = extract.NewService(&config.Review, logger)
	a.ReviewService = review.NewService(&config.Review, a.Dictionary, a.TextModel, a.VisionModel, logger)
	a.FeedbackService = feedback.NewService(storage.FeedbackStorage(), logger)

	a.ReviewHandler = handlers.NewReviewHandler(a.ExtractService, a.ReviewService, config.Review.MaxUploadMB, logger)
	a.FeedbackHandler = handlers.NewFeedbackHandler(a.FeedbackService, logger)
	a.APIHandler = handlers.NewAPIHandler(config, a.TextModel, a.VisionModel, logger)

	return a, nil
}

func (a *App) initDictionary() {
	dict, err := spelling.LoadDictionary(a.Config.Review.DictionaryDir, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).
			Str("dir", a.Config.Review.DictionaryDir).
			Msg("Dictionary unavailable, spelling pass disabled")
		return
	}
	a.Dictionary = dict
}

func (a *App) initModels() {
	kv := a.Storage.KeyValueStorage()

	claude, err := llm.NewClaudeService(&a.Config.Claude, kv, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Claude client unavailable, textual pass disabled")
	} else {
		a.TextModel = claude
	}

	gemini, err := llm.NewGeminiService(&a.Config.Gemini, kv, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Gemini client unavailable, visual pass disabled")
	} else {
		a.VisionModel = gemini
	}
}

// Close releases model clients and storage
func (a *App) Close() {
	if a.TextModel != nil {
		if err := a.TextModel.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close text model client")
		}
	}
	if a.VisionModel != nil {
		if err := a.VisionModel.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close vision model client")
		}
	}
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}
