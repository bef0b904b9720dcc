package publish

import (
	"context"

	"github.com/clarawendel/artisan-market/internal/market"
	"github.com/clarawendel/artisan-market/internal/social"
)

// FacebookClipboard adapts the Facebook composer to the flow. Consumer
// accounts cannot be posted to via the API, so success here means
// prepared copy-paste content, not a live post.
type FacebookClipboard struct {
	Composer *social.FacebookComposer
}

func (f *FacebookClipboard) Publish(_ context.Context, _ market.PlatformCredential, draft market.ProductDraft, gen market.GeneratedContent) (*Publication, error) {
	post := f.Composer.Prepare(draft, gen)
	return &Publication{
		Ref:       "clipboard",
		URL:       post.ComposerURL,
		Clipboard: &post,
	}, nil
}

// InstagramDirect adapts the Instagram publisher to the flow.
type InstagramDirect struct {
	Publisher *social.InstagramPublisher
}

func (i *InstagramDirect) Publish(ctx context.Context, cred market.PlatformCredential, draft market.ProductDraft, gen market.GeneratedContent) (*Publication, error) {
	caption := social.ComposeMessage(draft, gen)
	post, err := i.Publisher.Publish(ctx, cred, draft.PrimaryImage(), caption)
	if err != nil {
		return nil, err
	}
	return &Publication{Ref: post.PostID, URL: post.URL}, nil
}
