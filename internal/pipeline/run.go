// Package pipeline provides the high-level orchestration for CV
// generation: transform, layout estimation, and compression composed
// into one call producing a page-fitting CV plus metadata.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/careerkit/cvforge/internal/adapter"
	"github.com/careerkit/cvforge/internal/compress"
	"github.com/careerkit/cvforge/internal/layout"
	"github.com/careerkit/cvforge/internal/schemas"
	"github.com/careerkit/cvforge/internal/seniority"
	"github.com/careerkit/cvforge/internal/transform"
	"github.com/careerkit/cvforge/internal/types"
)

// Options holds configuration for one generation pass
type Options struct {
	Template                string
	MinScore                int
	MaxExperiences          int
	MaxBulletsPerExperience int
}

// Result is the outcome of a generation pass. CV carries the full
// cv_metadata block, so callers never re-derive fit statistics.
type Result struct {
	CV    *types.CVData
	Level int
	Fits  bool
	Dense bool
	Stats types.UnitStats
}

// GenerateFromEnvelope validates raw envelope JSON at the boundary and
// runs the full pipeline. Validation failures are hard rejections;
// they are never retried here since unchanged input fails identically.
func GenerateFromEnvelope(envelopeJSON []byte, profile *types.RAGProfile, job *types.JobContext, opts Options, log *zap.Logger) (*Result, error) {
	envelope, err := schemas.ValidateEnvelope(envelopeJSON)
	if err != nil {
		return nil, err
	}
	return Generate(envelope, profile, job, opts, log)
}

// Generate converts a validated envelope into a page-fitting CV.
// Each stage takes ownership of a fresh value; nothing is shared between
// concurrent invocations.
func Generate(envelope *types.WidgetEnvelope, profile *types.RAGProfile, job *types.JobContext, opts Options, log *zap.Logger) (*Result, error) {
	log = orNop(log)

	rules := rulesForProfile(profile)
	convertOpts := &adapter.Options{
		MinScore:                opts.MinScore,
		MaxExperiences:          valueOr(opts.MaxExperiences, rules.MaxExperiences),
		MaxBulletsPerExperience: valueOr(opts.MaxBulletsPerExperience, rules.MaxBulletsPerExperience),
		RAGProfile:              profile,
	}
	if job == nil {
		job = envelope.JobContext
	}

	cvData, err := adapter.ConvertAndSort(envelope, convertOpts)
	if err != nil {
		return nil, err
	}
	log.Debug("widgets converted",
		zap.Int("widgets_total", len(envelope.Widgets)),
		zap.Int("experiences", len(cvData.Experiences)))

	optimized, err := transform.FromCVData(cvData, profile, job)
	if err != nil {
		return nil, err
	}

	result := fit(optimized, opts.Template, log)
	mergeAdapterMetadata(result.CV, cvData.CVMetadata)
	return result, nil
}

// GenerateFromProfile runs the pipeline directly on a raw profile,
// bypassing the widget path. Used when no generator output is available.
func GenerateFromProfile(profile *types.RAGProfile, job *types.JobContext, opts Options, log *zap.Logger) (*Result, error) {
	log = orNop(log)

	optimized, err := transform.FromProfile(profile, job)
	if err != nil {
		return nil, err
	}
	return fit(optimized, opts.Template, log), nil
}

// fit runs the layout/compressor pair and assembles the final document.
// Layout overflow is not an error: dense=true plus full statistics let
// the caller decide whether to accept a dense page.
func fit(optimized *types.CVOptimized, templateName string, log *zap.Logger) *Result {
	level := seniority.Level(optimized.Seniority)
	rules := seniority.RulesFor(level)

	engine, err := layout.NewEngine(templateName, level)
	if err != nil {
		// Unknown template names fall back to the default rather than
		// failing generation
		log.Warn("unknown template, using default", zap.String("template", templateName))
		engine, _ = layout.NewEngine(layout.DefaultTemplate, level)
	}

	compressor := compress.NewCompressor(rules)
	compressed := compressor.AutoCompress(optimized, engine)

	log.Info("cv fitted",
		zap.String("template", engine.TemplateName()),
		zap.Int("compression_level", compressed.Level),
		zap.Bool("fits", compressed.Fits),
		zap.Bool("dense", compressed.Dense),
		zap.Float64("units", compressed.Stats.TotalUnits))

	cv := finalize(compressed.CV)
	cv.CVMetadata = &types.CVMetadata{
		TemplateUsed:            engine.TemplateName(),
		Seniority:               optimized.Seniority,
		CompressionLevelApplied: compressed.Level,
		Dense:                   compressed.Dense,
		UnitStats:               &compressed.Stats,
		LossSummary:             compressed.Loss,
	}
	if !compressed.Fits {
		cv.CVMetadata.Warnings = append(cv.CVMetadata.Warnings,
			"content exceeds the page budget at maximum compression")
	}

	return &Result{
		CV:    cv,
		Level: compressed.Level,
		Fits:  compressed.Fits,
		Dense: compressed.Dense,
		Stats: compressed.Stats,
	}
}

// finalize projects the fitted optimized structure onto the canonical CV
// document, keeping only displayed content in display order
func finalize(optimized *types.CVOptimized) *types.CVData {
	experiences := make([]types.Experience, 0, len(optimized.Experiences))
	for _, exp := range optimized.Experiences {
		if !exp.Display {
			continue
		}
		realisations := make([]string, 0, len(exp.Realisations))
		for _, real := range exp.Realisations {
			if real.Display {
				realisations = append(realisations, real.Description)
			}
		}
		experiences = append(experiences, types.Experience{
			ID:             exp.ID,
			Poste:          exp.Poste,
			Entreprise:     exp.Entreprise,
			DateDebut:      exp.DateDebut,
			DateFin:        exp.DateFin,
			Lieu:           exp.Lieu,
			DureeAffichee:  exp.DureeAffichee,
			Realisations:   realisations,
			Technologies:   exp.Technologies,
			Clients:        exp.Clients,
			RelevanceScore: exp.PertinenceScore,
		})
	}

	profil := optimized.Profil
	if optimized.ElevatorPitch != nil {
		profil.Pitch = optimized.ElevatorPitch.Texte
	}

	return &types.CVData{
		Profil:            profil,
		Experiences:       experiences,
		Competences:       optimized.Competences,
		Formations:        optimized.Formations,
		Langues:           optimized.Langues,
		ClientsReferences: optimized.ClientsReferences,
	}
}

// mergeAdapterMetadata folds the adapter's widget accounting into the
// final metadata block
func mergeAdapterMetadata(cv *types.CVData, adapterMeta *types.CVMetadata) {
	if adapterMeta == nil || cv.CVMetadata == nil {
		return
	}
	cv.CVMetadata.GeneratorType = adapterMeta.GeneratorType
	cv.CVMetadata.GeneratorVersion = adapterMeta.GeneratorVersion
	cv.CVMetadata.WidgetsTotal = adapterMeta.WidgetsTotal
	cv.CVMetadata.WidgetsFiltered = adapterMeta.WidgetsFiltered
}

// rulesForProfile derives the seniority rule set from the profile's
// total experience, defaulting when no profile is supplied
func rulesForProfile(profile *types.RAGProfile) seniority.Rules {
	var experiences []types.RAGExperience
	if profile != nil {
		experiences = profile.Experiences
	}
	return seniority.RulesFor(seniority.Calculate(seniority.TotalMonths(experiences)))
}

// valueOr returns value when set, otherwise the fallback
func valueOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

// orNop guards against nil loggers so the pipeline stays usable in tests
func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
