package sync

import (
	"log/slog"

	"github.com/iudanet/portalsync/internal/client/broadcast"
	"github.com/iudanet/portalsync/internal/client/data"
	"github.com/iudanet/portalsync/internal/client/draft"
	"github.com/iudanet/portalsync/internal/client/mode"
	"github.com/iudanet/portalsync/internal/client/storage"
	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/templates"
)

// Remote полный набор удаленных операций (реализуется api.Client)
type Remote interface {
	ProfileRemote
	StudioRemote
}

// Deps зависимости движка одного контекста выполнения
type Deps struct {
	Remote      Remote
	Storage     storage.DraftStorage
	Broadcaster broadcast.Broadcaster
	Owner       OwnerResolver
	Templates   *templates.Set
	Logger      *slog.Logger
}

// Engine синхронизаторы всех ресурсов с общим контроллером режима
type Engine struct {
	Associate *Synchronizer[models.AssociateProfile]
	Firm      *Synchronizer[models.FirmProfile]
	Vendor    *Synchronizer[models.VendorProfile]
	Studios   *StudioSync
	Mode      *mode.Controller
	Drafts    *draft.Store
}

// NewEngine собирает движок. Контроллер режима создается заново:
// каждый контекст сам обнаруживает потерю связи.
func NewEngine(deps Deps) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tmpl := deps.Templates
	if tmpl == nil {
		tmpl = templates.Default()
	}
	b := deps.Broadcaster
	if b == nil {
		b = broadcast.NewHub(logger)
	}

	mc := mode.New("portal", logger)
	drafts := draft.New(deps.Storage, b, logger)

	return &Engine{
		Associate: NewSynchronizer[models.AssociateProfile](Resource{
			Type:     models.ResourceAssociateProfile,
			Role:     models.RoleAssociate,
			Template: tmpl.Profile(models.ResourceAssociateProfile),
		}, deps.Remote, drafts, mc, deps.Owner, logger),
		Firm: NewSynchronizer[models.FirmProfile](Resource{
			Type:       models.ResourceFirmProfile,
			Role:       models.RoleFirm,
			Template:   tmpl.Profile(models.ResourceFirmProfile),
			FirmScoped: true,
		}, deps.Remote, drafts, mc, deps.Owner, logger),
		Vendor: NewSynchronizer[models.VendorProfile](Resource{
			Type:     models.ResourceVendorProfile,
			Role:     models.RoleVendor,
			Template: tmpl.Profile(models.ResourceVendorProfile),
		}, deps.Remote, drafts, mc, deps.Owner, logger),
		Studios: NewStudioSync(
			deps.Remote,
			data.NewStudioCollection(deps.Storage, b, tmpl, logger),
			mc, deps.Owner, logger,
		),
		Mode:   mc,
		Drafts: drafts,
	}
}
