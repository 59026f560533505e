// ABOUTME: Built-in list of subscribed feeds used when a user has no synced source list yet
// ABOUTME: Names double as the source hint the classifier reads, so podcast feeds say "Podcast"

package feed

import "feeds-app-api/core/domain"

var defaultSources = []domain.Source{
	{Name: "Google AI Blog", URL: "https://blog.google/technology/ai/rss/"},
	{Name: "AWS Machine Learning", URL: "https://aws.amazon.com/blogs/machine-learning/feed/"},
	{Name: "Microsoft News", URL: "https://news.microsoft.com/source/feed/"},
	{Name: "ZSA Blog", URL: "https://blog.zsa.io/posts.rss"},
	{Name: "One Useful Thing", URL: "https://www.oneusefulthing.org/feed"},
	{Name: "Simon Willison", URL: "https://simonwillison.net/atom/entries/"},
	{Name: "Zvi Mowshowitz", URL: "https://thezvi.substack.com/feed"},
	{Name: "OpenAI News", URL: "https://openai.com/news/rss.xml"},

	{Name: "Matthew Berman", URL: "https://www.youtube.com/feeds/videos.xml?channel_id=UCawZsQWqfGSbCI5yjkdVkTA"},
	{Name: "Two Minute Papers", URL: "https://www.youtube.com/feeds/videos.xml?channel_id=UCbfYPyITQ-7l4upoX8nvctg"},

	{Name: "Latent Space Podcast", URL: "https://api.substack.com/feed/podcast/69345.rss"},
	{Name: "Practical AI Podcast", URL: "https://feeds.transistor.fm/practical-ai-machine-learning-data-science-llm"},
	{Name: "Cognitive Revolution Podcast", URL: "https://api.substack.com/feed/podcast/1084089.rss"},
	{Name: "Forward Future Podcast", URL: "https://anchor.fm/s/f7cac464/podcast/rss"},

	{Name: "Ethan Mollick (Bluesky)", URL: "https://bluestream.deno.dev/emollick.bsky.social?reply=exclude"},

	{Name: "Anthropic News", URL: "https://raw.githubusercontent.com/Olshansk/rss-feeds/main/feeds/feed_anthropic_news.xml"},
}

// DefaultSources returns a fresh copy of the built-in source list, every entry enabled
func DefaultSources() []domain.Source {
	out := make([]domain.Source, len(defaultSources))
	for i, src := range defaultSources {
		src.Enabled = true
		out[i] = src
	}
	return out
}
