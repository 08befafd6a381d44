package specfill

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// SpecFiller runs the enrichment stages of a trip evaluation spec. Every
// stage builds a new spec value from its input; stage inputs are never
// mutated, so a failed run leaves the caller's spec exactly as loaded.
type SpecFiller struct {
	resolver *RouteResolver
	configs  SensingConfigs
	log      zerolog.Logger
}

func NewSpecFiller(resolver *RouteResolver, configs SensingConfigs, options ...func(*SpecFiller)) *SpecFiller {
	filler := &SpecFiller{
		resolver: resolver,
		configs:  configs,
		log:      zerolog.Nop(),
	}
	for _, option := range options {
		option(filler)
	}
	return filler
}

func WithFillerLogger(log zerolog.Logger) func(*SpecFiller) {
	return func(filler *SpecFiller) {
		filler.log = log
	}
}

// Fill runs all enrichment stages in order: datetime range, calibration
// tests, evaluation trips, sensing settings.
func (filler *SpecFiller) Fill(ctx context.Context, spec *EvalSpec) (*EvalSpec, error) {
	filled, err := filler.FillDatetime(spec)
	if err != nil {
		return nil, err
	}
	filled, err = filler.FillCalibrationTests(ctx, filled)
	if err != nil {
		return nil, err
	}
	filled, err = filler.FillEvalTrips(ctx, filled)
	if err != nil {
		return nil, err
	}
	return filler.FillSensingSettings(filled)
}

// FillDatetime computes the unix timestamp range from the formatted dates
// interpreted in the region's timezone.
func (filler *SpecFiller) FillDatetime(spec *EvalSpec) (*EvalSpec, error) {
	location, err := time.LoadLocation(spec.Region.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "Load timezone '%s'", spec.Region.Timezone)
	}
	startTs, err := parseFmtDate(spec.StartFmtDate, location)
	if err != nil {
		return nil, errors.Wrap(err, "Parse start date")
	}
	endTs, err := parseFmtDate(spec.EndFmtDate, location)
	if err != nil {
		return nil, errors.Wrap(err, "Parse end date")
	}
	filled := *spec
	filled.StartTs = startTs
	filled.EndTs = endTs
	return &filled, nil
}

// FillCalibrationTests resolves calibration stop locations and replaces each
// config stub with the full sensing config from the registry. Stationary
// tests may omit locations.
func (filler *SpecFiller) FillCalibrationTests(ctx context.Context, spec *EvalSpec) (*EvalSpec, error) {
	filled := *spec
	filled.CalibrationTests = make([]*CalibrationTest, len(spec.CalibrationTests))
	for i, test := range spec.CalibrationTests {
		filledTest := *test
		if test.StartLoc != nil {
			startLoc, _, err := filler.resolver.resolveLocation(ctx, test.StartLoc)
			if err != nil {
				return nil, errors.Wrapf(err, "Calibration test '%s'", test.ID)
			}
			filledTest.StartLoc = startLoc
		}
		if test.EndLoc != nil {
			endLoc, _, err := filler.resolver.resolveLocation(ctx, test.EndLoc)
			if err != nil {
				return nil, errors.Wrapf(err, "Calibration test '%s'", test.ID)
			}
			filledTest.EndLoc = endLoc
		}
		id, err := test.Config.ConfigID()
		if err != nil {
			return nil, errors.Wrapf(err, "Calibration test '%s'", test.ID)
		}
		config, err := filler.configs.Get(id)
		if err != nil {
			return nil, errors.Wrapf(err, "Calibration test '%s'", test.ID)
		}
		filledTest.Config = config
		filled.CalibrationTests[i] = &filledTest
	}
	return &filled, nil
}

// FillEvalTrips resolves route geometry for every leg of every evaluation
// trip. The first failing leg aborts the whole stage.
func (filler *SpecFiller) FillEvalTrips(ctx context.Context, spec *EvalSpec) (*EvalSpec, error) {
	filled := *spec
	filled.EvaluationTrips = make([]*Trip, len(spec.EvaluationTrips))
	for i, trip := range spec.EvaluationTrips {
		filledTrip := *trip
		if trip.Unimodal() {
			resolvedLeg, err := filler.resolver.ResolveLeg(ctx, &trip.Leg)
			if err != nil {
				return nil, errors.Wrapf(err, "Trip '%s'", trip.ID)
			}
			filledTrip.Leg = *resolvedLeg
		} else {
			filledTrip.Legs = make([]*Leg, len(trip.Legs))
			for j, leg := range trip.Legs {
				resolvedLeg, err := filler.resolver.ResolveLeg(ctx, leg)
				if err != nil {
					return nil, errors.Wrapf(err, "Trip '%s'", trip.ID)
				}
				filledTrip.Legs[j] = resolvedLeg
			}
		}
		filled.EvaluationTrips[i] = &filledTrip
	}
	return &filled, nil
}

// FillSensingSettings joins each setting's compare list against the registry
// and derives the human-readable comparison name.
func (filler *SpecFiller) FillSensingSettings(spec *EvalSpec) (*EvalSpec, error) {
	filled := *spec
	filled.SensingSettings = make([]*SensingSetting, len(spec.SensingSettings))
	for i, setting := range spec.SensingSettings {
		filledSetting := *setting
		filledSetting.Name = strings.Join(setting.Compare, " v/s ")
		filledSetting.SensingConfigs = make([]SensingConfig, len(setting.Compare))
		for j, id := range setting.Compare {
			config, err := filler.configs.Get(id)
			if err != nil {
				return nil, errors.Wrapf(err, "Sensing setting '%s'", filledSetting.Name)
			}
			filledSetting.SensingConfigs[j] = config
		}
		filled.SensingSettings[i] = &filledSetting
	}
	return &filled, nil
}
