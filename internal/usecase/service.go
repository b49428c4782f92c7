package usecase

import (
	"kennel-registry/internal/data/repository"
	"kennel-registry/pkg/blob"
	"kennel-registry/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	Member     MemberService
	Kennel     KennelService
	Dog        DogService
	Litter     LitterService
	Pedigree   PedigreeService
	Attachment AttachmentService
	Dashboard  DashboardService
}

func NewService(repo *repository.Repository, store blob.Store, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(repo, config, log),
		Member:     NewMemberService(repo, log),
		Kennel:     NewKennelService(repo, log),
		Dog:        NewDogService(repo, store, log),
		Litter:     NewLitterService(repo, log),
		Pedigree:   NewPedigreeService(repo, config, log),
		Attachment: NewAttachmentService(repo, store, config, log),
		Dashboard:  NewDashboardService(repo, log),
	}
}
