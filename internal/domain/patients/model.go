package patients

import "time"

// Sex es el sexo declarado del paciente (opcional).
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Patient es un miembro de la familia cuyo historial se sigue en la app.
type Patient struct {
	ID   string
	Name string

	// Contexto demográfico opcional; no participa del scoring, solo de la
	// presentación.
	Age int
	Sex Sex

	CreatedAt time.Time
}
