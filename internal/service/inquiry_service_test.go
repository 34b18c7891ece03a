package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate-api/internal/domain"
)

func submitInquiry(t *testing.T, e *testEnv, listingID string) *domain.Inquiry {
	t.Helper()
	q, err := e.inquiries.Submit(context.Background(), listingID, InquiryInput{
		Name:    "Ravi",
		Email:   "ravi@example.com",
		Phone:   "9999999999",
		Message: "Is this property still available?",
	})
	require.NoError(t, err)
	return q
}

func TestSubmitInquiryStartsPending(t *testing.T) {
	e := newTestEnv(t)

	owner := e.registerUser(t, "owner", "9876543210")
	l := e.createListing(t, owner, "Spacious 2BHK in Vasai West")

	q := submitInquiry(t, e, l.ID)
	assert.Equal(t, domain.InquiryStatusPending, q.Status)
	assert.Equal(t, l.ID, q.ListingID)
	assert.Empty(t, q.Response)
	assert.Nil(t, q.RespondedAt)
}

func TestSubmitInquiryToHiddenListingCreatesNoRecord(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.registerUser(t, "owner", "9876543210")
	l := e.createListing(t, owner, "Spacious 2BHK in Vasai West")

	// 修改打回待审核 → 不再接受询盘
	title := "Spacious 2BHK in Vasai West, renovated"
	_, err := e.listings.Update(ctx, owner, l.ID, UpdateListingInput{Title: &title})
	require.NoError(t, err)

	_, err = e.inquiries.Submit(ctx, l.ID, InquiryInput{
		Name: "Ravi", Email: "ravi@example.com", Phone: "9999999999",
		Message: "Is this property still available?",
	})
	require.ErrorIs(t, err, domain.ErrListingNotAvailable)

	var count int64
	require.NoError(t, e.db.Model(&domain.Inquiry{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = e.inquiries.Submit(ctx, "no-such-listing", InquiryInput{
		Name: "Ravi", Email: "ravi@example.com", Phone: "9999999999",
		Message: "Is this property still available?",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListForListingOwnerOnly(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.registerUser(t, "owner", "9876543210")
	other := e.registerUser(t, "other", "9123456789")
	l := e.createListing(t, owner, "Spacious 2BHK in Vasai West")
	submitInquiry(t, e, l.ID)

	items, err := e.inquiries.ListForListing(ctx, owner, l.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = e.inquiries.ListForListing(ctx, other, l.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListMineSpansAllOwnedListings(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.registerUser(t, "owner", "9876543210")
	other := e.registerUser(t, "other", "9123456789")
	l1 := e.createListing(t, owner, "Spacious 2BHK in Vasai West")
	l2 := e.createListing(t, owner, "Row house in Virar East")
	l3 := e.createListing(t, other, "Shop space on the main road")

	submitInquiry(t, e, l1.ID)
	submitInquiry(t, e, l2.ID)
	submitInquiry(t, e, l3.ID)

	mine, err := e.inquiries.ListMine(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	// 没有房源的用户拿到空集而不是报错
	empty := e.registerUser(t, "lurker", "9000000001")
	none, err := e.inquiries.ListMine(ctx, empty)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRespondTransitionsToResponded(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.registerUser(t, "owner", "9876543210")
	l := e.createListing(t, owner, "Spacious 2BHK in Vasai West")
	q := submitInquiry(t, e, l.ID)

	got, err := e.inquiries.Respond(ctx, owner, q.ID, "Yes, call me after 6pm.")
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryStatusResponded, got.Status)
	assert.Equal(t, "Yes, call me after 6pm.", got.Response)
	require.NotNil(t, got.RespondedAt)
}

func TestRespondGuards(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	owner := e.registerUser(t, "owner", "9876543210")
	other := e.registerUser(t, "other", "9123456789")
	l := e.createListing(t, owner, "Spacious 2BHK in Vasai West")
	q := submitInquiry(t, e, l.ID)

	_, err := e.inquiries.Respond(ctx, owner, q.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyResponse)

	_, err = e.inquiries.Respond(ctx, other, q.ID, "I am not the owner.")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.inquiries.Respond(ctx, owner, "no-such-inquiry", "Hello?")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
