package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"debtplanner/internal/cache"
	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/logger"
	"debtplanner/internal/metrics"
	"debtplanner/internal/payoff"
)

const (
	cacheNamespaceCompare  = "plan:compare"
	cacheNamespaceSimulate = "plan:simulate"
)

// PlannerConfig configures the planner. Zero values take the engine
// defaults; a nil Cache disables caching.
type PlannerConfig struct {
	HorizonMonths              int
	MaxMonthlyInterestFraction float64
	LargeBalanceThreshold      float64
	Cache                      cache.PlanCache
	CacheTTL                   time.Duration
	Metrics                    *metrics.Metrics
	// Now anchors simulations. Defaults to time.Now.
	Now func() time.Time
}

// plannerService feeds stored debts and fundings to the payoff engine.
type plannerService struct {
	users    UserServicer
	debts    DebtServicer
	payments PaymentServicer
	fundings FundingServicer
	sim      *payoff.Simulator
	schedule *payoff.Simulator
	cache    cache.PlanCache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
	log      *zap.SugaredLogger
}

// NewPlannerService creates a new PlannerServicer.
func NewPlannerService(db *gorm.DB, cfg PlannerConfig) PlannerServicer {
	return newPlannerService(db, cfg)
}

func newPlannerService(db *gorm.DB, cfg PlannerConfig) *plannerService {
	log := logger.Named("planner")
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	m := cfg.Metrics
	observer := payoff.ObserverFunc(func(a payoff.Anomaly) {
		m.RecordAnomaly(string(a.Kind))
		log.Warnw("payoff anomaly",
			"kind", a.Kind,
			"debt_id", a.DebtID,
			"value", a.Value,
			"limit", a.Limit,
		)
	})
	opts := payoff.Options{
		HorizonMonths: cfg.HorizonMonths,
		Interest: payoff.InterestModel{
			LargeBalanceThreshold: cfg.LargeBalanceThreshold,
			MaxMonthlyFraction:    cfg.MaxMonthlyInterestFraction,
		},
		Observer: observer,
	}
	withSchedule := opts
	withSchedule.RecordSchedule = true

	return &plannerService{
		users:    NewUserService(db),
		debts:    NewDebtService(db),
		payments: NewPaymentService(db),
		fundings: NewFundingService(db),
		sim:      payoff.NewSimulator(opts),
		schedule: payoff.NewSimulator(withSchedule),
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		metrics:  m,
		now:      now,
		log:      log,
	}
}

// Strategies lists the available payoff strategies.
func (s *plannerService) Strategies() []payoff.Strategy {
	return payoff.Strategies()
}

// planInput is everything a plan depends on. Its JSON encoding is the cache
// key input.
type planInput struct {
	UserID   string            `json:"user_id"`
	Strategy payoff.StrategyID `json:"strategy"`
	Budget   int64             `json:"budget"`
	Currency string            `json:"currency"`
	Schedule bool              `json:"schedule"`
	Start    string            `json:"start"`
	Debts    []payoff.Debt     `json:"debts"`
	Fundings []payoff.Funding  `json:"fundings"`

	start time.Time
	names debtNames
}

// resolve loads the user's debts and pending fundings and applies the saved
// plan settings to the request.
func (s *plannerService) resolve(userID string, req PlanRequest) (*planInput, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	strategyName := req.Strategy
	if strategyName == "" {
		strategyName = user.PayoffStrategy
	}
	strategy, err := payoff.ParseStrategy(strategyName)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidStrategy, err.Error())
	}

	budget := user.MonthlyBudget
	if req.MonthlyBudget != nil {
		budget = *req.MonthlyBudget
	}
	if budget < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "monthly budget cannot be negative")
	}

	debts, err := s.debts.GetActiveDebts(userID)
	if err != nil {
		return nil, err
	}

	// Day granularity keeps cache keys stable within a day.
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	fundings, err := s.fundings.GetPendingFundings(userID, start)
	if err != nil {
		return nil, err
	}

	names := make(debtNames, len(debts))
	for _, d := range debts {
		names[d.ID] = d.Name
	}

	return &planInput{
		UserID:   userID,
		Strategy: strategy,
		Budget:   budget,
		Currency: user.Currency,
		Schedule: req.IncludeSchedule,
		Start:    start.Format("2006-01-02"),
		Debts:    toEngineDebts(debts),
		Fundings: toEngineFundings(fundings),
		start:    start,
		names:    names,
	}, nil
}

func (in *planInput) scenario() payoff.Scenario {
	return payoff.Scenario{
		Debts:         in.Debts,
		Strategy:      in.Strategy,
		MonthlyBudget: centsToUnits(in.Budget),
		Fundings:      in.Fundings,
		StartDate:     in.start,
	}
}

func (s *plannerService) simulator(schedule bool) *payoff.Simulator {
	if schedule {
		return s.schedule
	}
	return s.sim
}

// Compare runs the baseline and accelerated simulations for a user.
func (s *plannerService) Compare(ctx context.Context, userID string, req PlanRequest) (*PlanComparison, error) {
	in, err := s.resolve(userID, req)
	if err != nil {
		return nil, err
	}

	var out PlanComparison
	if s.lookup(ctx, cacheNamespaceCompare, in, &out) {
		out.Cached = true
		return &out, nil
	}

	started := time.Now()
	c := s.simulator(in.Schedule).Compare(in.scenario())
	s.metrics.ObserveSimulation("compare", string(c.AcceleratedOutcome), c.AcceleratedMonths, time.Since(started))

	out = PlanComparison{
		Strategy:                  c.Strategy,
		Currency:                  in.Currency,
		MonthlyBudget:             in.Budget,
		BaselineBudget:            unitsToCents(c.BaselineBudget),
		BaselineMonths:            c.BaselineMonths,
		AcceleratedMonths:         c.AcceleratedMonths,
		BaselineFormattedTime:     formatRunMonths(c.BaselineOutcome, c.BaselineMonths),
		AcceleratedFormattedTime:  formatRunMonths(c.AcceleratedOutcome, c.AcceleratedMonths),
		BaselineInterest:          unitsToCents(c.BaselineInterest),
		AcceleratedInterest:       unitsToCents(c.AcceleratedInterest),
		MonthsSaved:               c.MonthsSaved,
		InterestSaved:             unitsToCents(c.InterestSaved),
		PayoffDate:                c.PayoffDate,
		BaselinePayoffDate:        c.BaselinePayoffDate,
		BaselineOutcome:           c.BaselineOutcome,
		AcceleratedOutcome:        c.AcceleratedOutcome,
		PerDebtFirstMonthPayments: in.names.allocations(c.PerDebtFirstMonthPayments),
		DebtPayoffs:               in.names.payoffs(c.DebtPayoffs),
		Redistributions:           in.names.redistributions(c.Redistributions),
		Schedule:                  scheduleToCents(c.Schedule),
	}

	s.store(ctx, cacheNamespaceCompare, in, &out)
	return &out, nil
}

// Simulate runs the user's plan once.
func (s *plannerService) Simulate(ctx context.Context, userID string, req PlanRequest) (*PlanSimulation, error) {
	in, err := s.resolve(userID, req)
	if err != nil {
		return nil, err
	}

	var out PlanSimulation
	if s.lookup(ctx, cacheNamespaceSimulate, in, &out) {
		out.Cached = true
		return &out, nil
	}

	started := time.Now()
	r := s.simulator(in.Schedule).Simulate(in.scenario())
	s.metrics.ObserveSimulation("simulate", string(r.Outcome), r.Months, time.Since(started))

	out = PlanSimulation{
		Strategy:           in.Strategy,
		Currency:           in.Currency,
		MonthlyBudget:      in.Budget,
		Outcome:            r.Outcome,
		Converged:          r.Converged,
		Months:             r.Months,
		FormattedTime:      formatRunMonths(r.Outcome, r.Months),
		TotalInterest:      unitsToCents(r.TotalInterest),
		PayoffDate:         r.PayoffDate,
		FirstMonthPayments: in.names.allocations(r.FirstMonthPayments),
		DebtPayoffs:        in.names.payoffs(r.DebtPayoffs),
		Redistributions:    in.names.redistributions(r.Redistributions),
		Schedule:           scheduleToCents(r.Schedule),
	}

	s.store(ctx, cacheNamespaceSimulate, in, &out)
	return &out, nil
}

// GetDebtPayoff estimates one debt's payoff at its minimum payment.
func (s *plannerService) GetDebtPayoff(userID, debtID string) (*DebtPayoffSummary, error) {
	debt, err := s.debts.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}
	totalPaid, err := s.payments.GetTotalPaid(userID, debtID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	details := payoff.CalculatePayoffDetails(toEngineDebt(*debt), centsToUnits(totalPaid), now)

	summary := &DebtPayoffSummary{
		DebtID:             debt.ID,
		DebtName:           debt.Name,
		Balance:            debt.Balance,
		EffectiveBalance:   unitsToCents(details.EffectiveBalance),
		TotalPaid:          totalPaid,
		Months:             details.Months,
		Never:              details.Never,
		FormattedTime:      details.FormattedTime,
		ProgressPercentage: details.ProgressPercentage,
	}
	if !details.Never && details.Months <= s.sim.Horizon() {
		date := now.AddDate(0, details.Months, 0)
		summary.PayoffDate = &date
	}
	return summary, nil
}

// formatRunMonths renders a run's duration; runs that never finish read
// "Never" rather than the horizon length.
func formatRunMonths(outcome payoff.Outcome, months int) string {
	switch outcome {
	case payoff.OutcomeCapped, payoff.OutcomeInsufficientBudget:
		return payoff.FormatMonths(payoff.Never)
	}
	return payoff.FormatMonths(months)
}

// lookup fills out from the cache. Cache failures are logged and treated as
// misses.
func (s *plannerService) lookup(ctx context.Context, namespace string, in *planInput, out any) bool {
	if s.cache == nil {
		return false
	}
	key, err := cache.Key(namespace, in)
	if err != nil {
		s.log.Warnw("failed to build plan cache key", "error", err)
		return false
	}

	data, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.RecordCache(metrics.CacheError)
		s.log.Warnw("plan cache read failed", "error", err, "user_id", in.UserID)
		return false
	case !ok:
		s.metrics.RecordCache(metrics.CacheMiss)
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.metrics.RecordCache(metrics.CacheError)
		s.log.Warnw("discarding unreadable plan cache entry", "error", err, "key", key)
		return false
	}
	s.metrics.RecordCache(metrics.CacheHit)
	return true
}

func (s *plannerService) store(ctx context.Context, namespace string, in *planInput, v any) {
	if s.cache == nil {
		return
	}
	key, err := cache.Key(namespace, in)
	if err != nil {
		s.log.Warnw("failed to build plan cache key", "error", err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warnw("failed to encode plan for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.metrics.RecordCache(metrics.CacheError)
		s.log.Warnw("plan cache write failed", "error", err, "user_id", in.UserID)
	}
}
