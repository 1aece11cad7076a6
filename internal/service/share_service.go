package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"notestack-be/internal/dto"
	"notestack-be/internal/entity"
	"notestack-be/internal/pkg/apperror"
	"notestack-be/internal/repository/memory"
	"notestack-be/internal/repository/specification"
	"notestack-be/internal/repository/unitofwork"
	"notestack-be/pkg/access"
	"notestack-be/pkg/events"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	receiveFailedMessage = "Failed to add shared note"
	DefaultQRSize        = 512
	MaxQRSize            = 2048
)

type IShareService interface {
	BuildShareable(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.ShareData, error)
	QRCode(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, size int) ([]byte, error)
	Receive(ctx context.Context, receiverId uuid.UUID, payload *dto.ShareData) (*dto.NoteResponse, error)
}

type shareService struct {
	uowFactory       unitofwork.RepositoryFactory
	verifier         *access.Verifier
	defaultNotebooks *memory.DefaultNotebookCache
	publisherService IPublisherService
}

func NewShareService(
	uowFactory unitofwork.RepositoryFactory,
	verifier *access.Verifier,
	defaultNotebooks *memory.DefaultNotebookCache,
	publisherService IPublisherService,
) IShareService {
	return &shareService{
		uowFactory:       uowFactory,
		verifier:         verifier,
		defaultNotebooks: defaultNotebooks,
		publisherService: publisherService,
	}
}

// BuildShareable packs a note into the portable share payload. The notebook
// and the owner record stay behind; only the sharer's id travels along.
func (s *shareService) BuildShareable(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.ShareData, error) {
	data, err := s.shareable(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}
	s.publishShared(ctx, userId, data)
	return data, nil
}

// QRCode renders the share payload as a PNG. Nothing is published when the
// image cannot be rendered.
func (s *shareService) QRCode(ctx context.Context, userId uuid.UUID, noteId uuid.UUID, size int) ([]byte, error) {
	data, err := s.shareable(ctx, userId, noteId)
	if err != nil {
		return nil, err
	}
	png, err := EncodeSharePNG(data, size)
	if err != nil {
		return nil, err
	}
	s.publishShared(ctx, userId, data)
	return png, nil
}

func (s *shareService) shareable(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.ShareData, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := findOwnedNote(ctx, uow, s.verifier, userId, noteId, "share")
	if err != nil {
		return nil, err
	}

	date := note.Date
	return &dto.ShareData{
		NoteId:       note.Id.String(),
		Title:        note.Title,
		Content:      note.Content,
		Tag:          note.Tag,
		OriginalDate: &date,
		SharedBy:     userId.String(),
	}, nil
}

func (s *shareService) publishShared(ctx context.Context, userId uuid.UUID, data *dto.ShareData) {
	s.publisherService.Publish(ctx, events.New(events.NoteShared, map[string]interface{}{
		"user_id": userId.String(),
		"note_id": data.NoteId,
	}))
}

func EncodeSharePNG(data *dto.ShareData, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	if size > MaxQRSize {
		return nil, apperror.Validation(fmt.Sprintf("QR size must not exceed %d", MaxQRSize))
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, apperror.Internal(internalErrorMessage, err)
	}
	png, err := qrcode.Encode(string(raw), qrcode.Medium, size)
	if err != nil {
		return nil, apperror.Validation("Note is too large to fit in a QR code")
	}
	return png, nil
}

// Receive imports a scanned payload into the caller's default notebook.
func (s *shareService) Receive(ctx context.Context, receiverId uuid.UUID, payload *dto.ShareData) (*dto.NoteResponse, error) {
	if payload == nil || payload.Title == "" || payload.NoteId == "" {
		return nil, apperror.Validation("Invalid share data")
	}
	if strings.EqualFold(strings.TrimSpace(payload.SharedBy), receiverId.String()) {
		return nil, apperror.Validation("You cannot add your own note")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(receiveFailedMessage, err)
	}
	defer uow.Rollback()

	// A previous import is stored with the " (Shared)" mark, so both spellings count.
	existing, err := uow.NoteRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: receiverId},
		specification.ByContent{Content: payload.Content},
		specification.ByTitleIn{Titles: []string{payload.Title, payload.Title + entity.SharedTitleMark}},
	)
	if err != nil {
		return nil, apperror.Internal(receiveFailedMessage, err)
	}
	if existing != nil {
		return nil, apperror.Validation("You already have this note")
	}

	notebookId, err := resolveDefaultNotebook(ctx, uow, s.defaultNotebooks, receiverId)
	if err != nil {
		if apperror.IsKind(err, apperror.KindInternal) {
			return nil, apperror.Internal(receiveFailedMessage, err)
		}
		return nil, err
	}

	tag := payload.Tag
	if tag == "" {
		tag = entity.SharedNoteTag
	}
	note := &entity.Note{
		Id:         uuid.New(),
		Title:      payload.Title + entity.SharedTitleMark,
		Content:    payload.Content,
		Tag:        tag,
		NotebookId: notebookId,
		UserId:     receiverId,
		Date:       time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, apperror.Internal(receiveFailedMessage, err)
	}

	snapshot, err := json.Marshal(payload)
	if err != nil {
		return nil, apperror.Internal(receiveFailedMessage, err)
	}
	receipt := &entity.ShareReceipt{
		Id:             uuid.New(),
		ReceiverId:     receiverId,
		SharedBy:       payload.SharedBy,
		SourceNoteId:   payload.NoteId,
		ReceivedNoteId: note.Id,
		Payload:        snapshot,
		CreatedAt:      time.Now(),
	}
	if err := uow.ShareReceiptRepository().Create(ctx, receipt); err != nil {
		return nil, apperror.Internal(receiveFailedMessage, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(receiveFailedMessage, err)
	}

	saved, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: note.Id}, specification.WithNotebook{})
	if err != nil || saved == nil {
		return nil, apperror.Internal(receiveFailedMessage, err)
	}

	notebookName := ""
	if saved.Notebook != nil {
		notebookName = saved.Notebook.Name
	}
	s.publisherService.Publish(ctx, events.New(events.NoteReceived, map[string]interface{}{
		"receiver_id":    receiverId.String(),
		"shared_by":      payload.SharedBy,
		"sharer_id":      verifiedSharer(ctx, uow, payload),
		"source_note_id": payload.NoteId,
		"note_id":        saved.Id.String(),
		"title":          saved.Title,
		"notebook_name":  notebookName,
	}))

	return toNoteResponse(saved), nil
}

// verifiedSharer returns the sharer's id when the payload's source note still
// belongs to the account it names, and "" otherwise. The payload is unsigned,
// so sharedBy alone identifies nobody.
func verifiedSharer(ctx context.Context, uow unitofwork.UnitOfWork, payload *dto.ShareData) string {
	sharer, err := uuid.Parse(payload.SharedBy)
	if err != nil {
		return ""
	}
	noteId, err := uuid.Parse(payload.NoteId)
	if err != nil {
		return ""
	}
	source, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId}, specification.UserOwnedBy{UserID: sharer})
	if err != nil || source == nil {
		return ""
	}
	return sharer.String()
}
