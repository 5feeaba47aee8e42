package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/ministryworks/dms-go/internal/domain/document"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/internal/testutils"
	"github.com/ministryworks/dms-go/pkg/storage/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type recordedEvent struct {
	Kind    Event
	Message string
}

// recordingDispatcher captures events synchronously for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (d *recordingDispatcher) Dispatch(kind Event, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, recordedEvent{Kind: kind, Message: message})
}

func (d *recordingDispatcher) all() []recordedEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]recordedEvent(nil), d.events...)
}

type documentFixture struct {
	svc        *DocumentService
	comments   *CommentService
	repos      *repository.Repos
	store      *mock.MockStore
	dispatcher *recordingDispatcher
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := mock.NewMockStore(ctrl)
	repos := repository.New(testutils.SetupTestDB(t))
	dispatcher := &recordingDispatcher{}
	locks := newDocLocks()
	audit := NewAuditService(repos)

	return &documentFixture{
		svc:        NewDocumentService(repos, store, dispatcher, audit, locks),
		comments:   NewCommentService(repos, dispatcher, audit, locks),
		repos:      repos,
		store:      store,
		dispatcher: dispatcher,
	}
}

func (f *documentFixture) expectUploads(n int) {
	f.store.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, _ int64, filename, folder, _ string) (string, error) {
			return "https://files.example.com/" + folder + "/" + filename, nil
		}).
		Times(n)
}

func uploads(names ...string) []FileUpload {
	out := make([]FileUpload, 0, len(names))
	for _, name := range names {
		out = append(out, FileUpload{
			Name:        name,
			ContentType: "application/pdf",
			Size:        int64(len(name)),
			Reader:      strings.NewReader(name),
		})
	}
	return out
}

func createDTO(title, ref string) document.CreateDocumentDTO {
	return document.CreateDocumentDTO{
		Title:           title,
		ProjectID:       1,
		ReferenceNumber: ref,
		DocumentType:    "report",
	}
}

func TestCreateDocumentRequiresAttachment(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), nil)
	assert.ErrorIs(t, err, ErrValidation)

	docs, err := f.svc.Search(document.SearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateDocumentKeepsFileOrder(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(3)

	doc, err := f.svc.CreateDocument(context.Background(), 7, createDTO("Budget Q1", "REF-001"), uploads("a.pdf", "b.pdf", "c.pdf"))
	require.NoError(t, err)
	require.Len(t, doc.FileItems, 3)

	assert.Equal(t, "a.pdf", doc.FileItems[0].Name)
	assert.Equal(t, "b.pdf", doc.FileItems[1].Name)
	assert.Equal(t, "c.pdf", doc.FileItems[2].Name)
	assert.Equal(t, "https://files.example.com/documents/a.pdf", doc.FileItems[0].URL)

	assert.Equal(t, document.StatusPending, doc.Status)
	assert.Equal(t, uint(7), doc.UploadedBy)
	assert.Empty(t, doc.SignedBy)

	events := f.dispatcher.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventDocumentCreated, events[0].Kind)
	assert.Equal(t, "New document uploaded: Budget Q1", events[0].Message)
}

func TestCreateDocumentDuplicateReference(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(1)

	_, err := f.svc.CreateDocument(context.Background(), 1, createDTO("First", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)

	// The duplicate is rejected before any upload happens.
	_, err = f.svc.CreateDocument(context.Background(), 1, createDTO("Second", "REF-001"), uploads("b.pdf"))
	assert.ErrorIs(t, err, ErrDuplicateReference)
}

// A competing create that lands between the existence check and the
// insert is stopped by the unique index, not the check. The conflicting
// row is written from inside the mocked upload to land in that window.
func TestCreateDocumentDuplicateReferenceLostRace(t *testing.T) {
	f := newDocumentFixture(t)
	f.store.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, _ int64, filename, folder, _ string) (string, error) {
			rival := &document.Document{
				Title:           "Rival",
				ProjectID:       1,
				ReferenceNumber: "REF-RACE",
				DocumentType:    "report",
				UploadedBy:      2,
				Status:          document.StatusPending,
				SignedBy:        datatypes.NewJSONSlice([]uint{}),
				FileItems:       datatypes.NewJSONSlice([]document.FileItem{{URL: "u", Name: "n"}}),
				Comments:        datatypes.NewJSONSlice([]document.Comment{}),
			}
			require.NoError(t, f.repos.Document.Insert(rival))
			return "https://files.example.com/" + folder + "/" + filename, nil
		})

	_, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-RACE"), uploads("a.pdf"))
	assert.ErrorIs(t, err, ErrDuplicateReference)

	docs, err := f.svc.Search(document.SearchQuery{ReferenceNumber: "REF-RACE"})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "Rival", docs[0].Title)
}

func TestCreateDocumentCanceledDuringUpload(t *testing.T) {
	f := newDocumentFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.store.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ interface{}, _ int64, filename, folder, _ string) (string, error) {
			cancel()
			return "https://files.example.com/" + folder + "/" + filename, nil
		})

	_, err := f.svc.CreateDocument(ctx, 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	assert.ErrorIs(t, err, context.Canceled)

	// Cancellation after the upload but before the insert must not
	// leave a repository record behind.
	docs, err := f.svc.Search(document.SearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.Empty(t, f.dispatcher.all())
}

func TestCreateDocumentUploadFailure(t *testing.T) {
	f := newDocumentFixture(t)
	f.store.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("connection refused"))

	_, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	assert.ErrorIs(t, err, ErrUploadFailed)

	// No partial document may be written after a failed upload.
	docs, err := f.svc.Search(document.SearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, docs)

	assert.Empty(t, f.dispatcher.all())
}

func TestCreateReplySnapshotsParent(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(2)

	parent, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)

	reply, err := f.svc.CreateReply(context.Background(), 2, parent.DID, document.CreateReplyDTO{Title: "Re: Budget Q1"}, uploads("b.pdf"))
	require.NoError(t, err)

	require.NotNil(t, reply.ParentDocumentID)
	assert.Equal(t, parent.DID, *reply.ParentDocumentID)
	assert.Equal(t, parent.ProjectID, reply.ProjectID)
	assert.Equal(t, parent.ReferenceNumber, reply.ReferenceNumber)
	assert.Equal(t, parent.DocumentType, reply.DocumentType)
	assert.Equal(t, uint(2), reply.UploadedBy)

	// Changing the parent afterwards must not touch the snapshot.
	newRef := "REF-002"
	_, err = f.svc.UpdateDocument(1, parent.DID, document.UpdateDocumentDTO{ReferenceNumber: &newRef})
	require.NoError(t, err)

	got, err := f.svc.GetDocument(reply.DID)
	require.NoError(t, err)
	assert.Equal(t, "REF-001", got.ReferenceNumber)

	events := f.dispatcher.all()
	require.Len(t, events, 2)
	assert.Equal(t, EventDocumentReplyCreated, events[1].Kind)
	assert.Equal(t, "Document reply uploaded: Re: Budget Q1", events[1].Message)
}

func TestCreateReplyParentNotFound(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.svc.CreateReply(context.Background(), 1, 42, document.CreateReplyDTO{Title: "orphan"}, uploads("a.pdf"))
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestGetRepliesOrdered(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(3)

	parent, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Parent", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)

	first, err := f.svc.CreateReply(context.Background(), 1, parent.DID, document.CreateReplyDTO{Title: "first"}, uploads("b.pdf"))
	require.NoError(t, err)
	second, err := f.svc.CreateReply(context.Background(), 1, parent.DID, document.CreateReplyDTO{Title: "second"}, uploads("c.pdf"))
	require.NoError(t, err)

	replies, err := f.svc.GetReplies(parent.DID)
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, first.DID, replies[0].DID)
	assert.Equal(t, second.DID, replies[1].DID)
}

func TestUpdateStatusRecordsApproval(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(1)

	doc, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)

	reason := "approved by committee"
	updated, err := f.svc.UpdateStatus(9, doc.DID, document.UpdateStatusDTO{Status: document.StatusApproved, Reason: &reason})
	require.NoError(t, err)
	assert.Equal(t, document.StatusApproved, updated.Status)

	rows, err := f.svc.ListApprovals(doc.DID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "approved", rows[0].Status)
	assert.Equal(t, uint(9), rows[0].ApprovedBy)
	require.NotNil(t, rows[0].Reason)
	assert.Equal(t, reason, *rows[0].Reason)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(1)

	doc, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(1, doc.DID, document.UpdateStatusDTO{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	status, err := f.svc.GetStatus(doc.DID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusPending, status)
}

func TestSignAppendOnlyAndIdempotent(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(1)

	doc, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)

	_, err = f.svc.Sign(4, doc.DID)
	require.NoError(t, err)
	_, err = f.svc.Sign(4, doc.DID)
	require.NoError(t, err)
	signed, err := f.svc.Sign(5, doc.DID)
	require.NoError(t, err)

	assert.Equal(t, []uint{4, 5}, []uint(signed.SignedBy))
}

func TestReplaceAttachmentChangesOnlyTargetIndex(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(4)
	f.store.EXPECT().
		Delete(gomock.Any(), "https://files.example.com/documents/b.pdf").
		Return(nil)

	doc, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf", "b.pdf", "c.pdf"))
	require.NoError(t, err)

	updated, err := f.svc.ReplaceAttachment(context.Background(), 1, doc.DID, 1, uploads("new.pdf")[0])
	require.NoError(t, err)
	require.Len(t, updated.FileItems, 3)

	assert.Equal(t, "a.pdf", updated.FileItems[0].Name)
	assert.Equal(t, "new.pdf", updated.FileItems[1].Name)
	assert.Equal(t, "c.pdf", updated.FileItems[2].Name)
}

func TestReplaceAttachmentIndexOutOfRange(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(1)

	doc, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)

	_, err = f.svc.ReplaceAttachment(context.Background(), 1, doc.DID, 3, uploads("new.pdf")[0])
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = f.svc.ReplaceAttachment(context.Background(), 1, doc.DID, -1, uploads("new.pdf")[0])
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestDeleteDocumentKeepsReplies(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(2)

	parent, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Parent", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)
	reply, err := f.svc.CreateReply(context.Background(), 1, parent.DID, document.CreateReplyDTO{Title: "child"}, uploads("b.pdf"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteDocument(1, parent.DID))

	_, err = f.svc.GetDocument(parent.DID)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	// Replies are not cascaded; the dangling parent id stays.
	got, err := f.svc.GetDocument(reply.DID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentDocumentID)
	assert.Equal(t, parent.DID, *got.ParentDocumentID)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	f := newDocumentFixture(t)

	err := f.svc.DeleteDocument(1, 99)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestSearchFilters(t *testing.T) {
	f := newDocumentFixture(t)
	f.expectUploads(3)

	_, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)
	_, err = f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q2", "REF-002"), uploads("b.pdf"))
	require.NoError(t, err)

	invoice := createDTO("Invoice March", "REF-003")
	invoice.DocumentType = "invoice"
	_, err = f.svc.CreateDocument(context.Background(), 1, invoice, uploads("c.pdf"))
	require.NoError(t, err)

	byTitle, err := f.svc.Search(document.SearchQuery{Title: "budget"})
	require.NoError(t, err)
	assert.Len(t, byTitle, 2)

	byType, err := f.svc.Search(document.SearchQuery{DocumentType: "invoice"})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "Invoice March", byType[0].Title)

	byRef, err := f.svc.Search(document.SearchQuery{ReferenceNumber: "REF-002"})
	require.NoError(t, err)
	require.Len(t, byRef, 1)
	assert.Equal(t, "Budget Q2", byRef[0].Title)

	both, err := f.svc.Search(document.SearchQuery{Title: "budget", DocumentType: "invoice"})
	require.NoError(t, err)
	assert.Empty(t, both)
}
