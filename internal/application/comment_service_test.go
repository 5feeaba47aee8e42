package application

import (
	"context"
	"testing"

	"github.com/ministryworks/dms-go/internal/domain/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentInput(content string) document.CommentInputDTO {
	return document.CommentInputDTO{Content: content}
}

func (f *documentFixture) createDoc(t *testing.T) *document.Document {
	t.Helper()
	f.expectUploads(1)
	doc, err := f.svc.CreateDocument(context.Background(), 1, createDTO("Budget Q1", "REF-001"), uploads("a.pdf"))
	require.NoError(t, err)
	return doc
}

func TestAddCommentReturnsIndices(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	first, err := f.comments.Add(2, doc.DID, commentInput("looks good"))
	require.NoError(t, err)
	second, err := f.comments.Add(3, doc.DID, commentInput("needs figures"))
	require.NoError(t, err)

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	list, err := f.comments.List(doc.DID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, uint(2), list[0].UserID)
	assert.Equal(t, "looks good", list[0].Content)
	assert.False(t, list[0].Timestamp.IsZero())
	assert.Equal(t, "needs figures", list[1].Content)
}

func TestAddCommentDocumentNotFound(t *testing.T) {
	f := newDocumentFixture(t)

	_, err := f.comments.Add(1, 42, commentInput("hello"))
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestEditCommentAuthorOnly(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.Add(2, doc.DID, commentInput("original"))
	require.NoError(t, err)

	_, err = f.comments.Edit(3, doc.DID, 0, commentInput("hijacked"))
	assert.ErrorIs(t, err, ErrForbidden)

	edited, err := f.comments.Edit(2, doc.DID, 0, commentInput("amended"))
	require.NoError(t, err)
	assert.Equal(t, "amended", edited.Content)

	list, err := f.comments.List(doc.DID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "amended", list[0].Content)
}

func TestEditCommentKeepsTimestampAndReplies(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.Add(2, doc.DID, commentInput("original"))
	require.NoError(t, err)
	_, err = f.comments.AddReply(3, doc.DID, 0, commentInput("a reply"))
	require.NoError(t, err)

	before, err := f.comments.List(doc.DID)
	require.NoError(t, err)

	_, err = f.comments.Edit(2, doc.DID, 0, commentInput("amended"))
	require.NoError(t, err)

	after, err := f.comments.List(doc.DID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].Timestamp.Unix(), after[0].Timestamp.Unix())
	require.Len(t, after[0].Replies, 1)
	assert.Equal(t, "a reply", after[0].Replies[0].Content)
}

func TestEditCommentIndexOutOfRange(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.Edit(1, doc.DID, 0, commentInput("nothing here"))
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCommentShiftsIndices(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.Add(2, doc.DID, commentInput("first"))
	require.NoError(t, err)
	_, err = f.comments.Add(2, doc.DID, commentInput("second"))
	require.NoError(t, err)
	_, err = f.comments.Add(2, doc.DID, commentInput("third"))
	require.NoError(t, err)

	require.NoError(t, f.comments.Delete(2, doc.DID, 1))

	list, err := f.comments.List(doc.DID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "third", list[1].Content)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.Add(2, doc.DID, commentInput("mine"))
	require.NoError(t, err)

	err = f.comments.Delete(3, doc.DID, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	err = f.comments.Delete(2, doc.DID, 5)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestReplySequenceAppendsInOrder(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.Add(2, doc.DID, commentInput("thread root"))
	require.NoError(t, err)

	_, err = f.comments.AddReply(3, doc.DID, 0, commentInput("first reply"))
	require.NoError(t, err)
	_, err = f.comments.AddReply(4, doc.DID, 0, commentInput("second reply"))
	require.NoError(t, err)

	list, err := f.comments.List(doc.DID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Replies, 2)
	assert.Equal(t, "first reply", list[0].Replies[0].Content)
	assert.Equal(t, uint(4), list[0].Replies[1].UserID)
}

func TestReplyToMissingComment(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.AddReply(1, doc.DID, 0, commentInput("into the void"))
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentEventDispatched(t *testing.T) {
	f := newDocumentFixture(t)
	doc := f.createDoc(t)

	_, err := f.comments.Add(2, doc.DID, commentInput("hello"))
	require.NoError(t, err)

	events := f.dispatcher.all()
	require.Len(t, events, 2)
	assert.Equal(t, EventCommentAdded, events[1].Kind)
}
