package starboard

import (
	"errors"
	"fmt"
	"log"

	"gloryboard-bot/database"
	"gloryboard-bot/models"
	"gloryboard-bot/utils"
)

// Engine reconciles reaction events against the link table. Every event
// recomputes the reactor count from scratch and derives the transition from
// it, so reordered or redelivered gateway events converge on the same state.
type Engine struct {
	boards  *database.BoardStore
	links   *database.LinkStore
	surface Surface
	locks   *LockTable
	botID   string
}

// NewEngine wires an engine to its stores and chat surface. The engine
// registers itself as the link store's delete listener so the mirrored post
// is torn down whatever caused the link to go away.
func NewEngine(boards *database.BoardStore, links *database.LinkStore, surface Surface, botID string) *Engine {
	e := &Engine{
		boards:  boards,
		links:   links,
		surface: surface,
		locks:   NewLockTable(),
		botID:   botID,
	}
	links.OnDelete(e.cleanupPost)
	return e
}

// ProcessReaction handles a single reaction addition or removal by reactorID.
// Reactions on a mirrored post are routed back to its source message; any
// other reaction inside board-owned channels is ignored, as are emojis no
// board is configured for. Only the engine's own reactions are skipped here:
// the recount excludes exactly e.botID, so every other reactor's events have
// to flow through, bots included.
func (e *Engine) ProcessReaction(guildID, channelID, messageID, emoji, reactorID string) error {
	if reactorID == e.botID {
		return nil
	}

	board, err := e.boards.ResolveByEmoji(guildID, emoji)
	if err != nil {
		return err
	}
	if board == nil {
		// Unconfigured pair, the common case.
		return nil
	}

	sourceChannelID, sourceMessageID := channelID, messageID

	if link, err := e.links.FindByPost(messageID); err != nil {
		return err
	} else if link != nil {
		// Reactors may star either side; recount against the original.
		sourceChannelID, sourceMessageID = link.SourceChannelID, link.SourceMessageID
	} else if channelID == board.ChannelID {
		// A message in the board channel that is not one of our posts.
		return nil
	} else if threadLinks, err := e.links.ByPostChannel(channelID); err != nil {
		return err
	} else if len(threadLinks) > 0 {
		// A reply inside a board-owned thread.
		return nil
	}

	return e.process(*board, sourceChannelID, sourceMessageID)
}

// ProcessReactionClear handles a bulk reaction removal on a message. The
// union may still meet the threshold from reactors on the mirrored post, so
// this is a plain recount, not an unconditional teardown.
func (e *Engine) ProcessReactionClear(messageID string) error {
	links, err := e.links.FindBySource(messageID)
	if err != nil {
		return err
	}
	// A clear on one of our posts affects its source's union too.
	if link, err := e.links.FindByPost(messageID); err != nil {
		return err
	} else if link != nil {
		links = append(links, *link)
	}
	for _, link := range links {
		board, err := e.boards.ByChannel(link.BoardChannelID)
		if err != nil {
			return err
		}
		if board == nil {
			continue
		}
		if err := e.process(*board, link.SourceChannelID, link.SourceMessageID); err != nil {
			return err
		}
	}
	return nil
}

// ProcessMessageDelete handles the deletion of a message, whether it was a
// tracked source or one of our mirrored posts. A post deleted externally only
// drops the link; the post is never recreated from this event.
func (e *Engine) ProcessMessageDelete(messageID string) error {
	links, err := e.links.FindBySource(messageID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := e.withLock(link.SourceMessageID, func() error {
			return e.links.Delete(link)
		}); err != nil {
			return err
		}
	}

	link, err := e.links.FindByPost(messageID)
	if err != nil {
		return err
	}
	if link != nil {
		return e.withLock(link.SourceMessageID, func() error {
			return e.links.Forget(*link)
		})
	}
	return nil
}

// ProcessThreadDelete handles the deletion of a thread holding one of our
// forum posts. Bookkeeping only; the post died with the thread.
func (e *Engine) ProcessThreadDelete(threadID string) error {
	links, err := e.links.ByPostChannel(threadID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := e.withLock(link.SourceMessageID, func() error {
			return e.links.Forget(link)
		}); err != nil {
			return err
		}
	}
	return nil
}

// ProcessChannelDelete handles the deletion of a channel. A dead board
// channel takes its configuration and all its links with it; a dead source
// channel takes the links of its messages, posts included.
func (e *Engine) ProcessChannelDelete(channelID string) error {
	board, err := e.boards.ByChannel(channelID)
	if err != nil {
		return err
	}
	if board != nil {
		if err := e.links.ForgetBoard(channelID); err != nil {
			return err
		}
		if err := e.boards.Disable(channelID); err != nil {
			return err
		}
		log.Printf("Board channel %s deleted, configuration and links dropped", channelID)
	}

	links, err := e.links.BySourceChannel(channelID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := e.withLock(link.SourceMessageID, func() error {
			return e.links.Delete(link)
		}); err != nil {
			return err
		}
	}
	return nil
}

// DisableBoard removes a board and tears down every post it created. This is
// the write path behind the /gloryboard disable command.
func (e *Engine) DisableBoard(channelID string) error {
	board, err := e.boards.ByChannel(channelID)
	if err != nil {
		return err
	}
	if board == nil {
		return nil
	}

	links, err := e.links.ByBoard(channelID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := e.withLock(link.SourceMessageID, func() error {
			return e.links.Delete(link)
		}); err != nil {
			return err
		}
	}
	return e.boards.Disable(channelID)
}

// Reconcile walks every link and replays the normal transition against the
// live surface. The sweep is the self-healing backstop for events the bot
// missed while offline.
func (e *Engine) Reconcile() {
	boards, err := e.boards.All()
	if err != nil {
		utils.Error("Starboard", "Reconcile", fmt.Sprintf("failed to list boards: %v", err))
		return
	}
	byChannel := make(map[string]models.Board, len(boards))
	for _, b := range boards {
		byChannel[b.ChannelID] = b
	}

	links, err := e.links.All()
	if err != nil {
		utils.Error("Starboard", "Reconcile", fmt.Sprintf("failed to list links: %v", err))
		return
	}

	var repaired int
	for _, link := range links {
		board, ok := byChannel[link.BoardChannelID]
		if !ok {
			// No link outlives its board.
			if err := e.withLock(link.SourceMessageID, func() error {
				return e.links.Delete(link)
			}); err != nil {
				utils.Error("Starboard", "Reconcile", fmt.Sprintf("failed to drop orphaned link for source %s: %v", link.SourceMessageID, err))
			}
			repaired++
			continue
		}
		if err := e.process(board, link.SourceChannelID, link.SourceMessageID); err != nil {
			utils.Error("Starboard", "Reconcile", fmt.Sprintf("failed to reconcile source %s: %v", link.SourceMessageID, err))
		}
	}

	log.Printf("Reconcile sweep finished: %d links checked, %d orphaned", len(links), repaired)
}

func (e *Engine) withLock(sourceMessageID string, fn func() error) error {
	release := e.locks.Acquire(sourceMessageID)
	defer release()
	return fn()
}

// process runs one full transition for a (board, source message) pair under
// the per-source lock: re-fetch, recount, then create, edit, delete or no-op.
func (e *Engine) process(board models.Board, sourceChannelID, sourceMessageID string) error {
	release := e.locks.Acquire(sourceMessageID)
	defer release()

	msg, err := e.surface.Message(sourceChannelID, sourceMessageID)
	if errors.Is(err, ErrSurfaceGone) {
		// Source vanished before we got here; cascade as a deletion.
		return e.dropSourceLinks(sourceMessageID)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch source message %s: %w", sourceMessageID, err)
	}

	if msg.AuthorIsBot || !msg.Mirrorable {
		return nil
	}

	link, err := e.links.Find(board.ChannelID, sourceMessageID)
	if err != nil {
		return err
	}

	count, err := e.countReactors(board, msg, link)
	if err != nil {
		return err
	}

	switch {
	case link == nil && count >= board.Minimum:
		return e.createPost(board, msg, count)
	case link != nil && count >= board.Minimum:
		return e.editPost(board, msg, *link, count)
	case link != nil && count < board.Minimum:
		return e.links.Delete(*link)
	}
	return nil
}

// countReactors unions the trigger-emoji reactor sets of the source message
// and, when a post exists, of the post itself. A side that vanished counts as
// empty; the transition that follows will reconcile it.
func (e *Engine) countReactors(board models.Board, msg *models.SourceMessage, link *models.Link) (int, error) {
	sourceReactors, err := e.surface.ReactionUserIDs(msg.ChannelID, msg.MessageID, board.Emoji)
	if err != nil && !errors.Is(err, ErrSurfaceGone) {
		return 0, fmt.Errorf("failed to list reactions on source %s: %w", msg.MessageID, err)
	}

	var postReactors []string
	if link != nil {
		postReactors, err = e.surface.ReactionUserIDs(link.PostChannelID, link.PostMessageID, board.Emoji)
		if err != nil && !errors.Is(err, ErrSurfaceGone) {
			return 0, fmt.Errorf("failed to list reactions on post %s: %w", link.PostMessageID, err)
		}
	}

	return CountReactors(sourceReactors, postReactors, e.botID), nil
}

func (e *Engine) createPost(board models.Board, msg *models.SourceMessage, count int) error {
	content := Render(msg, board, count)

	isForum, err := e.surface.IsForum(board.ChannelID)
	if errors.Is(err, ErrSurfaceGone) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect board channel %s: %w", board.ChannelID, err)
	}

	var ref PostRef
	if isForum {
		ref, err = e.surface.CreateForumPost(board.ChannelID, content)
	} else {
		ref, err = e.surface.SendPost(board.ChannelID, content)
	}
	if errors.Is(err, ErrSurfaceGone) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create post for source %s: %w", msg.MessageID, err)
	}

	return e.links.Upsert(models.Link{
		BoardChannelID:  board.ChannelID,
		SourceChannelID: msg.ChannelID,
		SourceMessageID: msg.MessageID,
		PostChannelID:   ref.ChannelID,
		PostMessageID:   ref.MessageID,
		ReactorCount:    count,
	})
}

func (e *Engine) editPost(board models.Board, msg *models.SourceMessage, link models.Link, count int) error {
	if count == link.ReactorCount {
		// Nothing to redraw, spare the API call.
		return nil
	}

	content := Render(msg, board, count)
	err := e.surface.EditPost(PostRef{ChannelID: link.PostChannelID, MessageID: link.PostMessageID}, content)
	if errors.Is(err, ErrSurfaceGone) {
		// Post deleted externally. Drop the link; recreation only happens
		// through a fresh reaction event.
		return e.links.Forget(link)
	}
	if err != nil {
		return fmt.Errorf("failed to edit post %s: %w", link.PostMessageID, err)
	}

	return e.links.UpdateCount(link, count)
}

// dropSourceLinks cascades the disappearance of a source message. Caller
// holds the source lock.
func (e *Engine) dropSourceLinks(sourceMessageID string) error {
	links, err := e.links.FindBySource(sourceMessageID)
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := e.links.Delete(link); err != nil {
			return err
		}
	}
	return nil
}

// cleanupPost removes the external artifact after its link row is gone. It
// runs as the link store's delete listener, so the teardown happens whether
// the delete came from a count drop, a source purge or a board disable.
// Forum threads with organic discussion are disowned instead of deleted.
func (e *Engine) cleanupPost(link models.Link) {
	if link.PostChannelID != link.BoardChannelID {
		// Forum post: the post channel is the thread itself.
		hasReplies, hasReactions, err := e.surface.ThreadActivity(link.PostChannelID, link.PostMessageID)
		if errors.Is(err, ErrSurfaceGone) {
			return
		}
		if err != nil {
			utils.Error("Starboard", "Cleanup", fmt.Sprintf("failed to inspect thread %s: %v", link.PostChannelID, err))
			return
		}
		if hasReplies || hasReactions {
			// The thread grew a life of its own; disown it, don't destroy it.
			log.Printf("Thread %s has organic activity, leaving it in place", link.PostChannelID)
			return
		}
		if err := e.surface.DeleteThread(link.PostChannelID); err != nil && !errors.Is(err, ErrSurfaceGone) {
			utils.Error("Starboard", "Cleanup", fmt.Sprintf("failed to delete thread %s: %v", link.PostChannelID, err))
		}
		return
	}

	err := e.surface.DeletePost(PostRef{ChannelID: link.PostChannelID, MessageID: link.PostMessageID})
	if err != nil && !errors.Is(err, ErrSurfaceGone) {
		utils.Error("Starboard", "Cleanup", fmt.Sprintf("failed to delete post %s: %v", link.PostMessageID, err))
	}
}
