package starboard

import (
	"fmt"
	"strings"
	"sync"

	"gloryboard-bot/models"
)

// fakeSurface is an in-memory chat surface for engine tests. Post IDs are
// deterministic ("post-1", "thread-1"), and vanished targets report
// ErrSurfaceGone like the real adapter.
type fakeSurface struct {
	mu        sync.Mutex
	messages  map[string]*models.SourceMessage // source messages by ID
	reactions map[string][]string              // "<messageID>/<emoji>" -> user IDs
	forums    map[string]bool                  // channelID -> is forum
	posts     map[string]*models.PostContent   // live posts by message ID
	replies   map[string]bool // threadID -> has replies
	nextID    int
	edits     int
	creates   int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		messages:  make(map[string]*models.SourceMessage),
		reactions: make(map[string][]string),
		forums:    make(map[string]bool),
		posts:     make(map[string]*models.PostContent),
		replies:   make(map[string]bool),
	}
}

func (f *fakeSurface) addMessage(channelID, messageID string, content string) *models.SourceMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	msg := &models.SourceMessage{
		MessageID:  messageID,
		ChannelID:  channelID,
		GuildID:    "guild",
		AuthorID:   "author",
		AuthorName: "Author",
		Content:    content,
		Mirrorable: true,
	}
	f.messages[messageID] = msg
	return msg
}

func (f *fakeSurface) setReactors(messageID, emoji string, userIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions[messageID+"/"+emoji] = userIDs
}

func (f *fakeSurface) removeMessage(messageID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.messages, messageID)
	delete(f.posts, messageID)
}

func (f *fakeSurface) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

func (f *fakeSurface) postContent(messageID string) *models.PostContent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts[messageID]
}

func (f *fakeSurface) Message(channelID, messageID string) (*models.SourceMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if msg, ok := f.messages[messageID]; ok {
		return msg, nil
	}
	return nil, fmt.Errorf("fetch message: %w", ErrSurfaceGone)
}

func (f *fakeSurface) ReactionUserIDs(channelID, messageID, emoji string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, isMessage := f.messages[messageID]
	_, isPost := f.posts[messageID]
	if !isMessage && !isPost {
		return nil, fmt.Errorf("list reactions: %w", ErrSurfaceGone)
	}
	return f.reactions[messageID+"/"+emoji], nil
}

func (f *fakeSurface) IsForum(channelID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.forums[channelID], nil
}

func (f *fakeSurface) SendPost(channelID string, content *models.PostContent) (PostRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.creates++
	id := fmt.Sprintf("post-%d", f.nextID)
	ref := PostRef{ChannelID: channelID, MessageID: id}
	f.posts[id] = content
	return ref, nil
}

func (f *fakeSurface) CreateForumPost(channelID string, content *models.PostContent) (PostRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.creates++
	id := fmt.Sprintf("thread-%d", f.nextID)
	ref := PostRef{ChannelID: id, MessageID: id}
	f.posts[id] = content
	return ref, nil
}

func (f *fakeSurface) EditPost(ref PostRef, content *models.PostContent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[ref.MessageID]; !ok {
		return fmt.Errorf("edit post: %w", ErrSurfaceGone)
	}
	f.edits++
	f.posts[ref.MessageID] = content
	return nil
}

func (f *fakeSurface) DeletePost(ref PostRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[ref.MessageID]; !ok {
		return fmt.Errorf("delete post: %w", ErrSurfaceGone)
	}
	delete(f.posts, ref.MessageID)
	return nil
}

func (f *fakeSurface) DeleteThread(threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[threadID]; !ok {
		return fmt.Errorf("delete thread: %w", ErrSurfaceGone)
	}
	delete(f.posts, threadID)
	return nil
}

func (f *fakeSurface) ThreadActivity(threadID, starterMessageID string) (bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[starterMessageID]; !ok {
		return false, false, fmt.Errorf("fetch thread: %w", ErrSurfaceGone)
	}
	hasReactions := false
	for key, users := range f.reactions {
		if strings.HasPrefix(key, starterMessageID+"/") && len(users) > 0 {
			hasReactions = true
		}
	}
	return f.replies[threadID], hasReactions, nil
}
