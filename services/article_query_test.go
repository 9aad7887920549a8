package services

import (
	"errors"
	"testing"
	"time"

	"article-portal-api/models"
)

func TestListForReviewerHidesDraftsAndDeleted(t *testing.T) {
	db := newTestDB(t)
	faculty := seedFaculty(t, db, "Engineering")
	student := seedStudent(t, db, "alice", faculty.ID)
	reviewer := seedAdmin(t, db, "dean", models.PermissionAll, "")
	event := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	if _, err := engine.SaveDraft(DraftInput{AuthorID: student.ID, Title: "Hidden draft"}); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	doomed, err := engine.SaveDraft(DraftInput{AuthorID: student.ID, Title: "Doomed draft"})
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if err := engine.DeleteDraft(student.ID, doomed.ID); err != nil {
		t.Fatalf("DeleteDraft failed: %v", err)
	}
	visible, err := engine.Submit(SubmitInput{
		AuthorID: student.ID,
		Title:    "Visible",
		EventID:  event.ID,
		Document: testDocument(),
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	page, err := queries.ListForReviewer(reviewer.ID, ReviewerListParams{})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 1 || len(page.Items) != 1 {
		t.Fatalf("expected exactly the submitted article, got %d items", len(page.Items))
	}
	if page.Items[0].ID != visible.ID {
		t.Errorf("expected article %s, got %s", visible.ID, page.Items[0].ID)
	}
}

func TestListForReviewerScopeAppliesBeforeFilters(t *testing.T) {
	db := newTestDB(t)
	home := seedFaculty(t, db, "Engineering")
	other := seedFaculty(t, db, "Business")
	alice := seedStudent(t, db, "alice", home.ID)
	bob := seedStudent(t, db, "bob", other.ID)
	coordinator := seedAdmin(t, db, "coord", models.PermissionCoordinator, home.ID)
	event := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	mine, err := engine.Submit(SubmitInput{AuthorID: alice.ID, Title: "In scope", EventID: event.ID, Document: testDocument()})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := engine.Submit(SubmitInput{AuthorID: bob.ID, Title: "Out of scope", EventID: event.ID, Document: testDocument()}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// The coordinator only sees their own faculty, even when asking for the other.
	page, err := queries.ListForReviewer(coordinator.ID, ReviewerListParams{FacultyID: other.ID})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != mine.ID {
		t.Fatalf("coordinator listing leaked outside their faculty: %+v", page.Items)
	}
}

func TestListForReviewerEmptyScopeReturnsNothing(t *testing.T) {
	db := newTestDB(t)
	faculty := seedFaculty(t, db, "Engineering")
	student := seedStudent(t, db, "alice", faculty.ID)
	stranded := seedAdmin(t, db, "coord", models.PermissionCoordinator, "")
	event := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	if _, err := engine.Submit(SubmitInput{AuthorID: student.ID, Title: "Invisible", EventID: event.ID, Document: testDocument()}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	page, err := queries.ListForReviewer(stranded.ID, ReviewerListParams{})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 0 || len(page.Items) != 0 {
		t.Errorf("empty scope must return an empty page, got %d items", len(page.Items))
	}
}

func TestListForReviewerFilters(t *testing.T) {
	db := newTestDB(t)
	faculty := seedFaculty(t, db, "Engineering")
	student := seedStudent(t, db, "Alice Cooper", faculty.ID)
	reviewer := seedAdmin(t, db, "dean", models.PermissionAll, "")
	spring := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	autumn := seedEvent(t, db, "Autumn issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	first, err := engine.Submit(SubmitInput{AuthorID: student.ID, Title: "Solar Panels", EventID: spring.ID, Document: testDocument()})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	second, err := engine.Submit(SubmitInput{AuthorID: student.ID, Title: "Wind Turbines", EventID: autumn.ID, Document: testDocument()})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := engine.Reject(reviewer.ID, second.ID, ""); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	// Status filter.
	page, err := queries.ListForReviewer(reviewer.ID, ReviewerListParams{Status: models.ArticleStatusRejected})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != second.ID {
		t.Errorf("status filter returned the wrong rows: %+v", page.Items)
	}

	// Event filter.
	page, err = queries.ListForReviewer(reviewer.ID, ReviewerListParams{EventID: spring.ID})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != first.ID {
		t.Errorf("event filter returned the wrong rows: %+v", page.Items)
	}

	// Case-insensitive title search.
	page, err = queries.ListForReviewer(reviewer.ID, ReviewerListParams{Search: "solar"})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != first.ID {
		t.Errorf("title search returned the wrong rows: %+v", page.Items)
	}

	// Search also matches the author name.
	page, err = queries.ListForReviewer(reviewer.ID, ReviewerListParams{Search: "cooper"})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("author search expected both articles, got %d", page.TotalCount)
	}

	// Unknown status is rejected.
	if _, err := queries.ListForReviewer(reviewer.ID, ReviewerListParams{Status: "SHINY"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for an unknown status, got %v", err)
	}
}

func TestListForAuthor(t *testing.T) {
	db := newTestDB(t)
	faculty := seedFaculty(t, db, "Engineering")
	alice := seedStudent(t, db, "alice", faculty.ID)
	bob := seedStudent(t, db, "bob", faculty.ID)
	event := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	draft, err := engine.SaveDraft(DraftInput{AuthorID: alice.ID, Title: "Draft stays visible"})
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	deleted, err := engine.SaveDraft(DraftInput{AuthorID: alice.ID, Title: "Deleted"})
	if err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if err := engine.DeleteDraft(alice.ID, deleted.ID); err != nil {
		t.Fatalf("DeleteDraft failed: %v", err)
	}
	if _, err := engine.Submit(SubmitInput{AuthorID: bob.ID, Title: "Someone else's", EventID: event.ID, Document: testDocument()}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	page, err := queries.ListForAuthor(alice.ID, AuthorListParams{})
	if err != nil {
		t.Fatalf("ListForAuthor failed: %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != draft.ID {
		t.Errorf("author listing must show own non-deleted articles only, got %+v", page.Items)
	}
}

func TestListPublicShowsApprovedOnly(t *testing.T) {
	db := newTestDB(t)
	faculty := seedFaculty(t, db, "Engineering")
	student := seedStudent(t, db, "alice", faculty.ID)
	reviewer := seedAdmin(t, db, "dean", models.PermissionAll, "")
	event := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	approved, err := engine.Submit(SubmitInput{AuthorID: student.ID, Title: "Published", EventID: event.ID, Document: testDocument()})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := engine.Approve(reviewer.ID, approved.ID, ""); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := engine.Submit(SubmitInput{AuthorID: student.ID, Title: "Still pending", EventID: event.ID, Document: testDocument()}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	page, err := queries.ListPublic(PublicListParams{})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if page.TotalCount != 1 || page.Items[0].ID != approved.ID {
		t.Errorf("public listing must contain approved articles only, got %+v", page.Items)
	}
}

func TestPagination(t *testing.T) {
	db := newTestDB(t)
	faculty := seedFaculty(t, db, "Engineering")
	student := seedStudent(t, db, "alice", faculty.ID)
	reviewer := seedAdmin(t, db, "dean", models.PermissionAll, "")
	event := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	for i := 0; i < 5; i++ {
		if _, err := engine.Submit(SubmitInput{AuthorID: student.ID, Title: "Entry", EventID: event.ID, Document: testDocument()}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	page, err := queries.ListForReviewer(reviewer.ID, ReviewerListParams{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if page.TotalCount != 5 {
		t.Errorf("expected total 5, got %d", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Errorf("expected 2 items on page 2, got %d", len(page.Items))
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", page.TotalPages)
	}

	// Out-of-range pages are empty but keep the totals.
	page, err = queries.ListForReviewer(reviewer.ID, ReviewerListParams{Page: 9, PageSize: 2})
	if err != nil {
		t.Fatalf("ListForReviewer failed: %v", err)
	}
	if len(page.Items) != 0 || page.TotalCount != 5 {
		t.Errorf("expected an empty page with totals intact, got %d items / total %d", len(page.Items), page.TotalCount)
	}
}

func TestGetDetail(t *testing.T) {
	db := newTestDB(t)
	faculty := seedFaculty(t, db, "Engineering")
	student := seedStudent(t, db, "alice", faculty.ID)
	reviewer := seedAdmin(t, db, "dean", models.PermissionAll, "")
	event := seedEvent(t, db, "Spring issue", time.Now().Add(time.Hour))
	engine := newEngine(db, &fakeNotifier{})
	queries := newQueries(db)

	article, err := engine.Submit(SubmitInput{AuthorID: student.ID, Title: "Reviewed twice", EventID: event.ID, Document: testDocument()})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := engine.RequestRevision(reviewer.ID, article.ID, "first pass"); err != nil {
		t.Fatalf("RequestRevision failed: %v", err)
	}
	if _, err := engine.Submit(SubmitInput{AuthorID: student.ID, ArticleID: article.ID, EventID: event.ID, Document: testDocument()}); err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}
	if _, err := engine.Approve(reviewer.ID, article.ID, "second pass"); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	detail, err := queries.GetDetail(article.ID)
	if err != nil {
		t.Fatalf("GetDetail failed: %v", err)
	}
	if detail.Document == nil {
		t.Error("expected the document attachment to be loaded")
	}
	if detail.Event == nil || detail.Event.ID != event.ID {
		t.Error("expected the event to be loaded")
	}
	if len(detail.Logs) != 2 {
		t.Fatalf("expected 2 audit rows, got %d", len(detail.Logs))
	}
	if detail.Logs[0].Status != models.ArticleStatusNeedAction || detail.Logs[1].Status != models.ArticleStatusApproved {
		t.Errorf("audit rows must be chronological, got %s then %s", detail.Logs[0].Status, detail.Logs[1].Status)
	}

	if _, err := queries.GetDetail("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for an unknown article, got %v", err)
	}
}
