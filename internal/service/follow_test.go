package service

import (
	"context"
	"testing"

	"github.com/QuillApp/web-service/internal/dto"
)

func TestFollowService_FollowIsIdempotent(t *testing.T) {
	services, store := newTestServices(t)
	ctx := context.Background()

	reader := store.addUser("reader")
	writer := store.addUser("writer")

	if err := services.Follow.Follow(ctx, reader.ID, "writer"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := services.Follow.Follow(ctx, reader.ID, "writer"); err != nil {
		t.Fatalf("second Follow: %v", err)
	}

	if len(store.follows) != 1 {
		t.Errorf("follow edges = %d, want 1 after double follow", len(store.follows))
	}
	if store.follows[0].AuthorID != writer.ID {
		t.Error("follow edge points at the wrong author")
	}
}

func TestFollowService_SelfFollowSkipped(t *testing.T) {
	services, store := newTestServices(t)

	user := store.addUser("narcissus")
	if err := services.Follow.Follow(context.Background(), user.ID, "narcissus"); err != nil {
		t.Fatalf("self Follow: %v", err)
	}
	if len(store.follows) != 0 {
		t.Errorf("self-follow created %d edges, want 0", len(store.follows))
	}
}

func TestFollowService_UnknownAuthor(t *testing.T) {
	services, store := newTestServices(t)

	user := store.addUser("reader")
	if err := services.Follow.Follow(context.Background(), user.ID, "ghost"); err != ErrUserNotFound {
		t.Errorf("Follow(unknown) = %v, want ErrUserNotFound", err)
	}
}

func TestFollowService_FollowThenUnfollow(t *testing.T) {
	services, store := newTestServices(t)
	ctx := context.Background()

	reader := store.addUser("reader")
	writer := store.addUser("writer")

	if _, err := services.Post.Create(ctx, writer.ID, dto.PostForm{Text: "hello"}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := services.Follow.Follow(ctx, reader.ID, "writer"); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	feed, err := services.Post.FindFeedPosts(ctx, reader.ID, "")
	if err != nil {
		t.Fatalf("FindFeedPosts: %v", err)
	}
	if len(feed.Posts) != 1 {
		t.Fatalf("feed after follow = %d posts, want 1", len(feed.Posts))
	}

	if err := services.Follow.Unfollow(ctx, reader.ID, "writer"); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if len(store.follows) != 0 {
		t.Errorf("follow edges after unfollow = %d, want 0", len(store.follows))
	}

	feed, err = services.Post.FindFeedPosts(ctx, reader.ID, "")
	if err != nil {
		t.Fatalf("FindFeedPosts: %v", err)
	}
	if len(feed.Posts) != 0 {
		t.Errorf("feed after unfollow = %d posts, want 0", len(feed.Posts))
	}
}

func TestFollowService_UnfollowWithoutEdge(t *testing.T) {
	services, store := newTestServices(t)

	reader := store.addUser("reader")
	store.addUser("writer")

	if err := services.Follow.Unfollow(context.Background(), reader.ID, "writer"); err != nil {
		t.Errorf("Unfollow with no edge = %v, want nil", err)
	}
}

func TestUserService_ProfileOf(t *testing.T) {
	services, store := newTestServices(t)
	ctx := context.Background()

	reader := store.addUser("reader")
	store.addUser("writer")

	if err := services.Follow.Follow(ctx, reader.ID, "writer"); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	profile, err := services.User.ProfileOf(ctx, "writer", &reader.ID)
	if err != nil {
		t.Fatalf("ProfileOf: %v", err)
	}
	if !profile.ViewerFollows {
		t.Error("ViewerFollows = false for a follower")
	}
	if len(profile.Followers) != 1 || profile.Followers[0] != "reader" {
		t.Errorf("followers = %v, want [reader]", profile.Followers)
	}

	anonymous, err := services.User.ProfileOf(ctx, "writer", nil)
	if err != nil {
		t.Fatalf("ProfileOf anonymous: %v", err)
	}
	if anonymous.ViewerFollows {
		t.Error("ViewerFollows = true for an anonymous viewer")
	}

	if _, err := services.User.ProfileOf(ctx, "ghost", nil); err != ErrUserNotFound {
		t.Errorf("ProfileOf(ghost) = %v, want ErrUserNotFound", err)
	}
}
