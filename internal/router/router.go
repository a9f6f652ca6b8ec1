package router

import (
	"database/sql"
	"net/http"

	mem "health-companion/internal/adapters/storage/memory"
	pg "health-companion/internal/adapters/storage/postgres"
	"health-companion/internal/domain/dashboard"
	"health-companion/internal/domain/medications"
	"health-companion/internal/domain/patients"
	"health-companion/internal/domain/vitals"
	"health-companion/internal/domain/wellness"
	"health-companion/internal/engine"
	"health-companion/internal/middleware"
	"health-companion/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory (modo dev/tests).
	DB *sql.DB

	Logger logger.Logger

	// Engine es la tabla de referencia del motor; vacía usa los defaults.
	Engine *engine.Config
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		patientsRepo    patients.Repository
		vitalsRepo      vitals.Repository
		medicationsRepo medications.Repository
		wellnessRepo    wellness.Repository
	)

	if opts.DB != nil {
		patientsRepo = pg.NewPatientsRepo(opts.DB)
		vitalsRepo = pg.NewVitalsRepo(opts.DB)
		medicationsRepo = pg.NewMedicationsRepo(opts.DB)
		wellnessRepo = pg.NewWellnessRepo(opts.DB)
	} else {
		patientsRepo = mem.NewPatientsRepo()
		vitalsRepo = mem.NewVitalsRepo()
		medicationsRepo = mem.NewMedicationsRepo()
		wellnessRepo = mem.NewWellnessRepo()
	}

	engineCfg := engine.DefaultConfig()
	if opts.Engine != nil {
		engineCfg = *opts.Engine
	}

	// Services por módulo
	patientsSvc := patients.NewService(patientsRepo)
	vitalsSvc := vitals.NewService(vitalsRepo, engineCfg)
	medicationsSvc := medications.NewService(medicationsRepo)
	wellnessSvc := wellness.NewService(wellnessRepo)
	dashboardSvc := dashboard.NewService(vitalsSvc, medicationsSvc, wellnessSvc, engineCfg)

	// Rutas por módulo
	patients.RegisterRoutes(r, patientsSvc)
	vitals.RegisterRoutes(r, vitalsSvc, patientsSvc)
	medications.RegisterRoutes(r, medicationsSvc, patientsSvc)
	wellness.RegisterRoutes(r, wellnessSvc, patientsSvc)
	dashboard.RegisterRoutes(r, dashboardSvc, patientsSvc)

	return r
}
