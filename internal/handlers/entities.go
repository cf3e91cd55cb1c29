package handlers

import "gizindir-panel/internal/services"

// Messages holds the localized error strings of one entity
type Messages struct {
	InvalidID    string
	InvalidBody  string
	NotFound     string
	ListFailed   string
	GetFailed    string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
}

// Entity describes how the generic CRUD handler serves one table
type Entity struct {
	Name     string
	Mutable  bool
	Messages Messages
}

var (
	UserEntity = Entity{
		Name:    services.EntityUsers,
		Mutable: true,
		Messages: Messages{
			InvalidID:    "Geçersiz kullanıcı ID",
			InvalidBody:  "Geçersiz kullanıcı verisi",
			NotFound:     "Kullanıcı bulunamadı",
			ListFailed:   "Kullanıcılar getirilirken bir hata oluştu",
			GetFailed:    "Kullanıcı getirilirken bir hata oluştu",
			CreateFailed: "Kullanıcı oluşturulurken bir hata oluştu",
			UpdateFailed: "Kullanıcı güncellenirken bir hata oluştu",
			DeleteFailed: "Kullanıcı silinirken bir hata oluştu",
		},
	}

	MatchEntity = Entity{
		Name: services.EntityMatches,
		Messages: Messages{
			InvalidID:    "Geçersiz eşleşme ID",
			InvalidBody:  "Geçersiz eşleşme verisi",
			NotFound:     "Eşleşme bulunamadı",
			ListFailed:   "Eşleşmeler getirilirken bir hata oluştu",
			GetFailed:    "Eşleşme getirilirken bir hata oluştu",
			CreateFailed: "Eşleşme oluşturulurken bir hata oluştu",
			DeleteFailed: "Eşleşme silinirken bir hata oluştu",
		},
	}

	MessageEntity = Entity{
		Name:    services.EntityMessages,
		Mutable: true,
		Messages: Messages{
			InvalidID:    "Geçersiz mesaj ID",
			InvalidBody:  "Geçersiz mesaj verisi",
			NotFound:     "Mesaj bulunamadı",
			ListFailed:   "Mesajlar getirilirken bir hata oluştu",
			GetFailed:    "Mesaj getirilirken bir hata oluştu",
			CreateFailed: "Mesaj oluşturulurken bir hata oluştu",
			UpdateFailed: "Mesaj güncellenirken bir hata oluştu",
			DeleteFailed: "Mesaj silinirken bir hata oluştu",
		},
	}

	SessionEntity = Entity{
		Name: services.EntitySessions,
		Messages: Messages{
			InvalidID:    "Geçersiz oturum ID",
			InvalidBody:  "Geçersiz oturum verisi",
			NotFound:     "Oturum bulunamadı",
			ListFailed:   "Oturumlar getirilirken bir hata oluştu",
			GetFailed:    "Oturum getirilirken bir hata oluştu",
			CreateFailed: "Oturum oluşturulurken bir hata oluştu",
			DeleteFailed: "Oturum silinirken bir hata oluştu",
		},
	}

	InteractionEntity = Entity{
		Name:    services.EntityInteractions,
		Mutable: true,
		Messages: Messages{
			InvalidID:    "Geçersiz etkileşim ID",
			InvalidBody:  "Geçersiz etkileşim verisi",
			NotFound:     "Etkileşim bulunamadı",
			ListFailed:   "Etkileşimler getirilirken bir hata oluştu",
			GetFailed:    "Etkileşim getirilirken bir hata oluştu",
			CreateFailed: "Etkileşim oluşturulurken bir hata oluştu",
			UpdateFailed: "Etkileşim güncellenirken bir hata oluştu",
			DeleteFailed: "Etkileşim silinirken bir hata oluştu",
		},
	}
)
