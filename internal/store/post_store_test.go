package store

import (
	"fmt"
	"testing"

	"blogpost/internal/models"

	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, users *UserStore) (*models.User, *models.User) {
	t.Helper()
	alice, err := users.Create("alice", "a@x.com", "pw123")
	require.NoError(t, err)
	bob, err := users.Create("bob", "b@x.com", "pw456")
	require.NoError(t, err)
	return alice, bob
}

func TestPostCreateAndGet(t *testing.T) {
	conn := testDB(t)
	users := NewUserStore(conn)
	posts := NewPostStore(conn)
	alice, _ := seedUsers(t, users)

	post, err := posts.Create(alice, "Hello", "World")
	require.NoError(t, err)
	require.NotZero(t, post.ID)
	require.Equal(t, alice.ID, post.UserID)
	require.False(t, post.DatePosted.IsZero())

	got, err := posts.Get(post.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello", got.Title)
	require.Equal(t, "alice", got.User.Username)

	_, err = posts.Get(post.ID + 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostUpdateOwnershipEnforced(t *testing.T) {
	conn := testDB(t)
	users := NewUserStore(conn)
	posts := NewPostStore(conn)
	alice, bob := seedUsers(t, users)

	post, err := posts.Create(alice, "Hello", "World")
	require.NoError(t, err)

	_, err = posts.Update(post.ID, bob, "Hijacked", "gotcha")
	require.ErrorIs(t, err, ErrForbidden)

	// The post is unchanged in the store after the forbidden attempt
	got, err := posts.Get(post.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello", got.Title)
	require.Equal(t, "World", got.Content)

	updated, err := posts.Update(post.ID, alice, "Hello again", "Updated")
	require.NoError(t, err)
	require.Equal(t, "Hello again", updated.Title)

	_, err = posts.Update(post.ID+999, alice, "x", "y")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostDeleteOwnershipEnforced(t *testing.T) {
	conn := testDB(t)
	users := NewUserStore(conn)
	posts := NewPostStore(conn)
	alice, bob := seedUsers(t, users)

	post, err := posts.Create(alice, "Hello", "World")
	require.NoError(t, err)

	require.ErrorIs(t, posts.Delete(post.ID, bob), ErrForbidden)

	_, err = posts.Get(post.ID)
	require.NoError(t, err, "forbidden delete must leave the post in place")

	require.NoError(t, posts.Delete(post.ID, alice))
	_, err = posts.Get(post.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, posts.Delete(post.ID, alice), ErrNotFound)
}

func TestPostPagination(t *testing.T) {
	conn := testDB(t)
	users := NewUserStore(conn)
	posts := NewPostStore(conn)
	alice, bob := seedUsers(t, users)

	const n = 12
	for i := 1; i <= n; i++ {
		_, err := posts.Create(alice, fmt.Sprintf("post %d", i), "content")
		require.NoError(t, err)
	}
	// Another author's post must not leak into alice's feed
	_, err := posts.Create(bob, "bob post", "content")
	require.NoError(t, err)

	// ceil(12/5) = 3 pages of 5, 5, 2
	seen := make(map[uint]bool)
	wantSizes := []int{5, 5, 2}
	for i, want := range wantSizes {
		page, err := posts.ListByAuthor(alice, i+1)
		require.NoError(t, err)
		require.Equal(t, 3, page.TotalPages)
		require.EqualValues(t, n, page.Total)
		require.Len(t, page.Posts, want, "page %d", i+1)

		for j, p := range page.Posts {
			require.Equal(t, alice.ID, p.UserID)
			require.False(t, seen[p.ID], "post %d appeared on two pages", p.ID)
			seen[p.ID] = true
			if j > 0 {
				prev := page.Posts[j-1]
				require.False(t, p.DatePosted.After(prev.DatePosted), "creation-time order must be non-increasing")
				if p.DatePosted.Equal(prev.DatePosted) {
					require.Less(t, p.ID, prev.ID, "equal timestamps tie-break by id descending")
				}
			}
		}
	}
	require.Len(t, seen, n, "union of all pages must equal the full set")

	// Beyond the last non-empty page comes back empty, not an error
	empty, err := posts.ListByAuthor(alice, 4)
	require.NoError(t, err)
	require.Empty(t, empty.Posts)
	require.Equal(t, 4, empty.Number)

	// Global feed sees both authors
	all, err := posts.ListAll(1)
	require.NoError(t, err)
	require.EqualValues(t, n+1, all.Total)
	require.Equal(t, "bob post", all.Posts[0].Title, "newest post first")
}

func TestPostPageHelpers(t *testing.T) {
	p := Page{Number: 1, TotalPages: 3}
	require.False(t, p.HasPrev())
	require.True(t, p.HasNext())

	p = Page{Number: 3, TotalPages: 3}
	require.True(t, p.HasPrev())
	require.False(t, p.HasNext())
}
