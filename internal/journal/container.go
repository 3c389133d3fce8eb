package journal

import "gorm.io/gorm"

type JournalContainer struct {
	Handler *Handler
	Service JournalService
}

func NewJournalContainer(db *gorm.DB) *JournalContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &JournalContainer{
		Handler: handler,
		Service: service,
	}
}
