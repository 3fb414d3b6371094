package ledger

import (
	"context"

	"github.com/google/uuid"

	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/logging"
	"fjacquet/casa-ledger/internal/models"
)

// CreateProfile bootstraps a household profile with the given subprofiles.
// The apportionment method starts out manual; SetApportionmentMethod changes
// it later. Creating an id that already exists is rejected.
func (m *Mutator) CreateProfile(ctx context.Context, id, name string, subprofileNames []string) (models.Profile, error) {
	if _, err := m.store.GetProfile(ctx, id); err == nil {
		return models.Profile{}, &ledgererror.ValidationError{
			Field:  "profile",
			Reason: "profile " + id + " already exists",
		}
	} else if !ledgererror.IsNotFound(err) {
		return models.Profile{}, err
	}

	profile := models.Profile{
		ID:                  id,
		Name:                name,
		ApportionmentMethod: models.MethodManual,
	}
	for _, n := range subprofileNames {
		profile.Subprofiles = append(profile.Subprofiles, models.Subprofile{
			ID:   uuid.NewString(),
			Name: n,
		})
	}

	batch := m.store.NewBatch()
	batch.CreateProfile(profile)
	if err := batch.Commit(ctx); err != nil {
		return models.Profile{}, err
	}

	m.log.Info("profile created",
		logging.F("profile", id),
		logging.F("subprofiles", len(profile.Subprofiles)))
	return profile, nil
}
