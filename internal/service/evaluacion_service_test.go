package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubEvaluacionRepo struct {
	evals map[uuid.UUID]*model.Evaluacion
}

func newStubEvaluacionRepo() *stubEvaluacionRepo {
	return &stubEvaluacionRepo{evals: make(map[uuid.UUID]*model.Evaluacion)}
}

func (r *stubEvaluacionRepo) Create(_ context.Context, e *model.Evaluacion) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.evals[e.ID] = e
	return nil
}

func (r *stubEvaluacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Evaluacion, error) {
	e, ok := r.evals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *stubEvaluacionRepo) ListByAlumno(_ context.Context, alumnoID uuid.UUID) ([]model.Evaluacion, error) {
	var out []model.Evaluacion
	for _, e := range r.evals {
		if e.AlumnoID == alumnoID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEvaluacionRepo) ListPendientes(_ context.Context) ([]model.Evaluacion, error) {
	var out []model.Evaluacion
	for _, e := range r.evals {
		if e.Resultado == "pendiente" {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEvaluacionRepo) Update(_ context.Context, e *model.Evaluacion) error {
	r.evals[e.ID] = e
	return nil
}

var _ repository.EvaluacionRepository = (*stubEvaluacionRepo)(nil)

// stubCategoriaRepo serves a fixed progression ordered by Orden.
type stubCategoriaRepo struct {
	cats []model.Categoria
}

func (r *stubCategoriaRepo) Create(_ context.Context, _ *model.Categoria) error { return nil }
func (r *stubCategoriaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Categoria, error) {
	for i := range r.cats {
		if r.cats[i].ID == id {
			return &r.cats[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *stubCategoriaRepo) List(_ context.Context) ([]model.Categoria, error) {
	out := make([]model.Categoria, len(r.cats))
	copy(out, r.cats)
	sort.Slice(out, func(i, j int) bool { return out[i].Orden < out[j].Orden })
	return out, nil
}
func (r *stubCategoriaRepo) Update(_ context.Context, _ *model.Categoria) error { return nil }
func (r *stubCategoriaRepo) SoftDelete(_ context.Context, _ uuid.UUID) error    { return nil }

var _ repository.CategoriaRepository = (*stubCategoriaRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func progresion() []model.Categoria {
	return []model.Categoria{
		{ID: uuid.New(), Nombre: "Blanco", Cinturon: "blanco", Orden: 0, MesesPreparacion: 4},
		{ID: uuid.New(), Nombre: "Amarillo", Cinturon: "amarillo", Orden: 1, MesesPreparacion: 6},
		{ID: uuid.New(), Nombre: "Naranja", Cinturon: "naranja", Orden: 2, MesesPreparacion: 8},
	}
}

// alumnoDePrueba builds a student of the given age in the given category.
func alumnoDePrueba(cat model.Categoria, edad int) *model.Alumno {
	nacimiento := time.Now().AddDate(-edad, 0, -30)
	return &model.Alumno{
		ID:              uuid.New(),
		Nombre:          "Aiko Tanaka",
		Cedula:          "V-12345678",
		FechaNacimiento: nacimiento,
		CategoriaID:     cat.ID,
		Categoria:       cat,
		Activo:          true,
	}
}

func buildEvaluacionSvc(cats []model.Categoria, alumno *model.Alumno) (EvaluacionService, *stubEvaluacionRepo, *stubAlumnoRepo) {
	evalRepo := newStubEvaluacionRepo()
	alumnoRepo := &stubAlumnoRepo{alumno: alumno}
	svc := NewEvaluacionService(evalRepo, alumnoRepo, &stubCategoriaRepo{cats: cats}, DefaultPreparacionConfig())
	return svc, evalRepo, alumnoRepo
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestMultiplicador_Tramos(t *testing.T) {
	cfg := DefaultPreparacionConfig()
	cases := []struct {
		edad int
		mult float64
	}{
		{8, 1.5},
		{11, 1.5},
		{12, 1.2}, // limite inferior juvenil
		{17, 1.2},
		{18, 1.0}, // limite inferior adulto
		{39, 1.0},
		{40, 1.3}, // limite inferior veterano
		{65, 1.3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.mult, cfg.Multiplicador(tc.edad), "edad %d", tc.edad)
	}
}

func TestEstimarPreparacion(t *testing.T) {
	cats := progresion()

	cases := []struct {
		name  string
		edad  int
		meses int // ceil(6 * mult) hacia Amarillo
	}{
		{"infantil redondea hacia arriba", 10, 9}, // 6 * 1.5
		{"juvenil", 15, 8},                        // ceil(6 * 1.2 = 7.2)
		{"adulto", 25, 6},                         // 6 * 1.0
		{"veterano", 45, 8},                       // ceil(6 * 1.3 = 7.8)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alumno := alumnoDePrueba(cats[0], tc.edad)
			svc, _, _ := buildEvaluacionSvc(cats, alumno)

			resp, err := svc.EstimarPreparacion(context.Background(), alumno.ID)
			require.NoError(t, err)
			assert.Equal(t, "Blanco", resp.CategoriaActual)
			assert.Equal(t, "Amarillo", resp.CategoriaObjetivo)
			assert.Equal(t, 6, resp.MesesBase)
			assert.Equal(t, tc.meses, resp.MesesEstimados)
		})
	}
}

func TestEstimarPreparacion_CategoriaMaxima(t *testing.T) {
	cats := progresion()
	alumno := alumnoDePrueba(cats[2], 25)
	svc, _, _ := buildEvaluacionSvc(cats, alumno)

	_, err := svc.EstimarPreparacion(context.Background(), alumno.ID)
	assert.ErrorContains(t, err, "categoria maxima")
}

func TestCrearEvaluacion(t *testing.T) {
	cats := progresion()
	alumno := alumnoDePrueba(cats[0], 20)
	svc, _, _ := buildEvaluacionSvc(cats, alumno)

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearEvaluacionRequest{
		AlumnoID:            alumno.ID.String(),
		CategoriaObjetivoID: cats[1].ID.String(),
		Fecha:               "2026-10-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "pendiente", resp.Resultado)
	assert.Equal(t, cats[1].ID.String(), resp.CategoriaObjetivoID)
	assert.Equal(t, "2026-10-15", resp.Fecha)
}

func TestCrearEvaluacion_ObjetivoNoSuperior(t *testing.T) {
	cats := progresion()
	alumno := alumnoDePrueba(cats[1], 20) // ya es Amarillo
	svc, _, _ := buildEvaluacionSvc(cats, alumno)

	_, err := svc.Crear(context.Background(), uuid.New(), dto.CrearEvaluacionRequest{
		AlumnoID:            alumno.ID.String(),
		CategoriaObjetivoID: cats[0].ID.String(),
		Fecha:               "2026-10-15",
	})
	assert.ErrorContains(t, err, "superior a la actual")
}

func TestRegistrarResultado_AprobadoPromueve(t *testing.T) {
	cats := progresion()
	alumno := alumnoDePrueba(cats[0], 20)
	svc, _, alumnoRepo := buildEvaluacionSvc(cats, alumno)
	ctx := context.Background()

	creada, err := svc.Crear(ctx, uuid.New(), dto.CrearEvaluacionRequest{
		AlumnoID:            alumno.ID.String(),
		CategoriaObjetivoID: cats[1].ID.String(),
		Fecha:               "2026-10-15",
	})
	require.NoError(t, err)

	puntaje := 85
	resp, err := svc.RegistrarResultado(ctx, uuid.MustParse(creada.ID), dto.RegistrarResultadoRequest{
		Resultado: "aprobado",
		Puntaje:   &puntaje,
	})
	require.NoError(t, err)
	assert.Equal(t, "aprobado", resp.Resultado)
	assert.Equal(t, cats[1].ID, alumnoRepo.alumno.CategoriaID)
}

func TestRegistrarResultado_ReprobadoNoPromueve(t *testing.T) {
	cats := progresion()
	alumno := alumnoDePrueba(cats[0], 20)
	svc, _, alumnoRepo := buildEvaluacionSvc(cats, alumno)
	ctx := context.Background()

	creada, err := svc.Crear(ctx, uuid.New(), dto.CrearEvaluacionRequest{
		AlumnoID:            alumno.ID.String(),
		CategoriaObjetivoID: cats[1].ID.String(),
		Fecha:               "2026-10-15",
	})
	require.NoError(t, err)

	_, err = svc.RegistrarResultado(ctx, uuid.MustParse(creada.ID), dto.RegistrarResultadoRequest{Resultado: "reprobado"})
	require.NoError(t, err)
	assert.Equal(t, cats[0].ID, alumnoRepo.alumno.CategoriaID)

	// A closed evaluation cannot be graded twice.
	_, err = svc.RegistrarResultado(ctx, uuid.MustParse(creada.ID), dto.RegistrarResultadoRequest{Resultado: "aprobado"})
	assert.ErrorContains(t, err, "ya tiene resultado")
}
