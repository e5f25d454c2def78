// Package medrag turns medical reports into grounded, patient-friendly
// explanations. Retrieval runs either against a pgvector-backed corpus
// with local ONNX embeddings or an in-memory lexical index, selected at
// construction. All generated statements are grounded in the retrieved
// passages; anything the corpus cannot support is marked uncertain and
// low-confidence output is routed to doctor review.
package medrag

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/saisubham-29/medrag/chat"
	"github.com/saisubham-29/medrag/core/generate"
	"github.com/saisubham-29/medrag/core/pipeline"
	"github.com/saisubham-29/medrag/core/retrieval"
	"github.com/saisubham-29/medrag/database"
	"github.com/saisubham-29/medrag/helper"
	"github.com/saisubham-29/medrag/model"
	"github.com/saisubham-29/medrag/review"
	loadSql "github.com/saisubham-29/medrag/sql"
)

// Config selects the system's retrieval and generation backends.
// A nil Database selects the in-memory lexical index. A nil Complete
// requires Offline to be true.
type Config struct {
	Database *helper.DatabaseConfiguration
	Complete generate.CompleteFunc
	Offline  bool
}

// System wires the full pipeline: retrieval index, finding extractor,
// grounded generator and the doctor review queue.
type System struct {
	DB        *helper.Database
	Index     retrieval.Index
	Generator *generate.Generator
	Reviews   *review.Queue

	log *slog.Logger
}

// NewSystem creates a system from the given config. With a database
// configuration it builds the pgvector index with the default chunking
// and embedding pipeline, otherwise the lexical index.
func NewSystem(config *Config) (*System, error) {
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	var db *helper.Database
	var index retrieval.Index

	if config.Database != nil {
		db = helper.NewDatabase("medrag", config.Database, logger)
		err := loadSql.Init(db.Instance)
		if err != nil {
			return nil, helper.NewError("initialize database extensions", err)
		}

		store, err := database.NewStore(db, pipeline.EmbeddingDim, false)
		if err != nil {
			return nil, helper.NewError("create store", err)
		}

		embedder, err := pipeline.DefaultEmbedder()
		if err != nil {
			return nil, helper.NewError("create default embedder", err)
		}

		index, err = retrieval.NewVectorIndex(store, pipeline.NewPipeline(pipeline.DefaultChunker(), embedder))
		if err != nil {
			return nil, helper.NewError("create vector index", err)
		}

		logger.Info("Using vector retrieval index")
	} else {
		index = retrieval.NewLexicalIndex(pipeline.DefaultChunker())
		logger.Info("Using lexical retrieval index")
	}

	generator, err := generate.NewGenerator(index, config.Complete, config.Offline)
	if err != nil {
		return nil, helper.NewError("create generator", err)
	}

	return &System{
		DB:        db,
		Index:     index,
		Generator: generator,
		Reviews:   review.NewQueue(),
		log:       logger,
	}, nil
}

// Close closes the database connection if one is open.
func (s *System) Close() error {
	if s.DB != nil && s.DB.Instance != nil {
		return s.DB.Instance.Close()
	}
	return nil
}

// InitializeKnowledgeBase replaces the corpus with the given medical
// reference texts.
func (s *System) InitializeKnowledgeBase(ctx context.Context, sources []string) error {
	err := s.Index.IndexSources(ctx, sources)
	if err != nil {
		return helper.NewError("index sources", err)
	}

	s.log.Info("Knowledge base initialized", slog.Int("num_sources", len(sources)))
	return nil
}

// ProcessReport runs the full explanation pipeline on a report. Outputs
// flagged for doctor review are queued automatically; the returned id is
// uuid.Nil when no review is needed.
func (s *System) ProcessReport(ctx context.Context, reportText string, patient *model.PatientContext) (*model.ExplanationOutput, uuid.UUID, error) {
	output, err := s.Generator.Explain(ctx, reportText, patient)
	if err != nil {
		return nil, uuid.Nil, err
	}

	s.log.Info("Processed report",
		slog.Float64("confidence", output.ConfidenceScore),
		slog.Int("num_findings", len(output.Findings)),
		slog.Bool("requires_review", output.RequiresDoctorReview),
	)

	if !output.RequiresDoctorReview {
		return output, uuid.Nil, nil
	}

	reportID, err := s.Reviews.Submit(output)
	if err != nil {
		return nil, uuid.Nil, helper.NewError("submit for review", err)
	}
	return output, reportID, nil
}

// AnswerQuestion answers a free-form medical question against the corpus.
func (s *System) AnswerQuestion(ctx context.Context, question string, patient *model.PatientContext) (*model.Answer, error) {
	answer, err := s.Generator.Answer(ctx, question, patient)
	if err != nil {
		return nil, err
	}

	s.log.Info("Answered question", slog.Float64("confidence", answer.Confidence))
	return answer, nil
}

// NewChatBot creates a chatbot session on the system's completion
// capability.
func (s *System) NewChatBot() (*chat.Bot, error) {
	return chat.NewBot(s.Generator.Complete)
}
