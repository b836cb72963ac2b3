package clinicalrecord

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/model"
	apperrors "github.com/clinicore/clinic-api/pkg/errors"
)

type fakeRecordRepo struct {
	records map[uuid.UUID]*model.ClinicalRecord
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[uuid.UUID]*model.ClinicalRecord)}
}

func (f *fakeRecordRepo) Create(ctx context.Context, r *model.ClinicalRecord) error {
	r.ID = uuid.New()
	copied := *r
	f.records[r.ID] = &copied
	return nil
}

func (f *fakeRecordRepo) Get(ctx context.Context, id uuid.UUID) (*model.ClinicalRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, apperrors.NotFound("clinical record")
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRecordRepo) List(ctx context.Context) ([]*model.ClinicalRecord, error) {
	var out []*model.ClinicalRecord
	for _, r := range f.records {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.ClinicalRecord, error) {
	var out []*model.ClinicalRecord
	for _, r := range f.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Update mirrors the SQL layer: the snapshot columns stay as stored.
func (f *fakeRecordRepo) Update(ctx context.Context, r *model.ClinicalRecord) error {
	stored, ok := f.records[r.ID]
	if !ok {
		return apperrors.NotFound("clinical record")
	}
	copied := *r
	copied.PractitionerSnapshot = stored.PractitionerSnapshot
	copied.PractitionerLicense = stored.PractitionerLicense
	copied.PractitionerSpecialization = stored.PractitionerSpecialization
	f.records[r.ID] = &copied
	return nil
}

func (f *fakeRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.records[id]; !ok {
		return apperrors.NotFound("clinical record")
	}
	delete(f.records, id)
	return nil
}

func (f *fakeRecordRepo) PatientStats(ctx context.Context, patientID uuid.UUID) (*model.PatientRecordStats, error) {
	return &model.PatientRecordStats{}, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	return p, nil
}
func (f *fakePatientRepo) GetByRut(ctx context.Context, rut string) (*model.Patient, error) {
	return nil, apperrors.NotFound("patient")
}
func (f *fakePatientRepo) List(ctx context.Context) ([]*model.Patient, error) { return nil, nil }
func (f *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*Service, *model.Patient, *model.User, *model.User) {
	t.Helper()

	patient := &model.Patient{Base: model.Base{ID: uuid.New()}, FullName: "Jane Roe"}
	physician := &model.User{
		Base:     model.Base{ID: uuid.New()},
		Email:    "doc@clinic.test",
		FullName: "Dr. Ada",
		Role:     model.RolePhysician,
	}
	admin := &model.User{
		Base:     model.Base{ID: uuid.New()},
		Email:    "admin@clinic.test",
		FullName: "Admin",
		Role:     model.RoleAdministrator,
	}

	svc := NewService(newFakeRecordRepo(), &fakePatientRepo{
		patients: map[uuid.UUID]*model.Patient{patient.ID: patient},
	})
	return svc, patient, physician, admin
}

func createReq(patientID uuid.UUID) *model.CreateClinicalRecordRequest {
	return &model.CreateClinicalRecordRequest{
		PatientID:   patientID,
		VisitDate:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		ReasonVisit: "checkup",
		Diagnosis:   "healthy",
	}
}

func TestComputeBMI(t *testing.T) {
	bmi := ComputeBMI(ptr(70.0), ptr(175.0))
	require.NotNil(t, bmi)
	assert.Equal(t, 22.9, *bmi)

	bmi = ComputeBMI(ptr(80.0), ptr(180.0))
	require.NotNil(t, bmi)
	assert.Equal(t, 24.7, *bmi)

	assert.Nil(t, ComputeBMI(nil, ptr(175.0)))
	assert.Nil(t, ComputeBMI(ptr(70.0), nil))
	assert.Nil(t, ComputeBMI(ptr(70.0), ptr(0.0)))
	assert.Nil(t, ComputeBMI(ptr(0.0), ptr(175.0)))
	assert.Nil(t, ComputeBMI(ptr(-70.0), ptr(175.0)))
}

func TestCreateRecordSetsSnapshotAndBMI(t *testing.T) {
	svc, patient, physician, _ := setup(t)

	req := createReq(patient.ID)
	req.WeightKg = ptr(70.0)
	req.HeightCm = ptr(175.0)

	record, err := svc.CreateRecord(context.Background(), physician, req)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ada", record.PractitionerName)
	assert.Equal(t, model.RolePhysician, record.PractitionerRole)
	require.NotNil(t, record.BMI)
	assert.Equal(t, 22.9, *record.BMI)
}

func TestCreateRecordRequiresPractitionerRole(t *testing.T) {
	svc, patient, _, _ := setup(t)

	tech := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RoleTechnician}
	_, err := svc.CreateRecord(context.Background(), tech, createReq(patient.ID))
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)
}

func TestCreateRecordUnknownPatient(t *testing.T) {
	svc, _, physician, _ := setup(t)

	_, err := svc.CreateRecord(context.Background(), physician, createReq(uuid.New()))
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestUpdateRecordAuthorization(t *testing.T) {
	svc, patient, physician, admin := setup(t)

	record, err := svc.CreateRecord(context.Background(), physician, createReq(patient.ID))
	require.NoError(t, err)

	// A different physician may not edit.
	other := &model.User{Base: model.Base{ID: uuid.New()}, Role: model.RolePhysician}
	_, err = svc.UpdateRecord(context.Background(), other, record.ID, &model.UpdateClinicalRecordRequest{
		Diagnosis: ptr("flu"),
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	// The original practitioner may.
	updated, err := svc.UpdateRecord(context.Background(), physician, record.ID, &model.UpdateClinicalRecordRequest{
		Diagnosis: ptr("flu"),
	})
	require.NoError(t, err)
	assert.Equal(t, "flu", updated.Diagnosis)

	// So may an administrator, without the snapshot changing hands.
	updated, err = svc.UpdateRecord(context.Background(), admin, record.ID, &model.UpdateClinicalRecordRequest{
		Treatment: ptr("rest"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ada", updated.PractitionerName)
}

func TestUpdateRecordRecomputesBMI(t *testing.T) {
	svc, patient, physician, _ := setup(t)

	req := createReq(patient.ID)
	req.WeightKg = ptr(70.0)
	req.HeightCm = ptr(175.0)
	record, err := svc.CreateRecord(context.Background(), physician, req)
	require.NoError(t, err)

	updated, err := svc.UpdateRecord(context.Background(), physician, record.ID, &model.UpdateClinicalRecordRequest{
		WeightKg: ptr(80.0),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.BMI)
	assert.Equal(t, 26.1, *updated.BMI)
}
