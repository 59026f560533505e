package extract

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"feeds-app-api/core/domain"
	"feeds-app-api/core/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articlePage = `<!DOCTYPE html>
<html><head>
<title>Understanding Caches</title>
</head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a> <a href="/contact">Contactlink</a></nav>
<header><p>Site banner tagline</p></header>
<article>
<h1>Understanding Caches</h1>
<p>` + strings.Repeat("Caches keep recently used data close to the code that needs it, trading memory for latency.   ", 6) + `</p>


<p>` + strings.Repeat("Eviction policies decide which entries leave first when the cache is full and new data arrives. ", 6) + `</p>
</article>
<footer>Copyright footer text</footer>
<script>var tracking = "should never appear";</script>
</body></html>`

func okPage(body string) func(ctx context.Context, url string) (interfaces.Response, error) {
	return func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 200, body: body}, nil
	}
}

func TestArticleStrategy_ExtractsMainText(t *testing.T) {
	client := &mockHTTPClient{getFunc: okPage(articlePage)}
	s := NewArticleStrategy(client, nil)

	result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://blog.test/caches", Title: "Feed title"})

	require.IsType(t, domain.ArticleResult{}, result)
	o := result.Summary()
	require.True(t, o.OK(), "error: %s", o.Error)
	assert.Contains(t, o.Text, "Caches keep recently used data")
	assert.Contains(t, o.Text, "Eviction policies decide")
	assert.NotContains(t, o.Text, "Contactlink")
	assert.NotContains(t, o.Text, "should never appear")
	assert.NotContains(t, o.Text, "   ")
	assert.Equal(t, "Understanding Caches", o.Title)
}

func TestArticleStrategy_FormWrappedPage(t *testing.T) {
	page := `<html><head><title>Council Notice</title></head><body>
<form class="search"><input type="text" name="q"/><button>Searchbutton</button></form>
<form id="aspnetForm" method="post" action="./notice.aspx">
<input type="hidden" name="__VIEWSTATE" value="abc"/>
<header><h1>Council Notice</h1></header>
<article>
<p>` + strings.Repeat("The council will resurface the harbour road during the spring months, with lanes closed overnight. ", 6) + `</p>
<p>` + strings.Repeat("Residents can comment on the schedule at the town hall until the end of the consultation period. ", 6) + `</p>
</article>
</form>
</body></html>`
	s := NewArticleStrategy(&mockHTTPClient{getFunc: okPage(page)}, nil)

	o := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://council.test/notice.aspx"}).Summary()

	require.True(t, o.OK(), "error: %s", o.Error)
	assert.Contains(t, o.Text, "resurface the harbour road")
	assert.Contains(t, o.Text, "Residents can comment")
	assert.NotContains(t, o.Text, "Searchbutton")
	assert.NotContains(t, o.Text, "\n")
}

func TestArticleStrategy_HTTPStatus(t *testing.T) {
	client := &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 403, body: "blocked"}, nil
	}}
	s := NewArticleStrategy(client, nil)

	o := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://blog.test/x"}).Summary()

	assert.False(t, o.OK())
	assert.Equal(t, "", o.Text)
	assert.Equal(t, "Could not fetch article: HTTP 403", o.Error)
}

func TestArticleStrategy_TransportError(t *testing.T) {
	client := &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		return nil, fmt.Errorf("connection reset by peer")
	}}
	s := NewArticleStrategy(client, nil)

	o := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://blog.test/x"}).Summary()

	assert.Equal(t, "Error fetching article: connection reset by peer", o.Error)
}

func TestArticleStrategy_NoReadableContent(t *testing.T) {
	client := &mockHTTPClient{getFunc: okPage("<html><head></head><body><nav>Menu only</nav></body></html>")}
	s := NewArticleStrategy(client, nil)

	o := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://blog.test/empty"}).Summary()

	assert.False(t, o.OK())
	assert.Equal(t, msgArticleEmpty, o.Error)
}

func TestArticleStrategy_TitleFallsBackToCaller(t *testing.T) {
	page := "<html><body><article><p>" + strings.Repeat("A paragraph without any document title at all. ", 20) + "</p></article></body></html>"
	client := &mockHTTPClient{getFunc: okPage(page)}
	s := NewArticleStrategy(client, nil)

	o := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://blog.test/untitled", Title: "From the feed"}).Summary()

	require.True(t, o.OK(), o.Error)
	assert.Equal(t, "From the feed", o.Title)
}

func TestNormalizeText(t *testing.T) {
	in := "  first   line\t\twith tabs \r\n\r\n\r\n\n  second  paragraph  \n\n\n\nthird  "
	assert.Equal(t, "first line with tabs\n\nsecond paragraph\n\nthird", normalizeText(in))
}

func TestVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/abc12345678", "abc12345678"},
		{"https://youtu.be/abc12345678?t=42", "abc12345678"},
		{"https://www.youtube.com/shorts/a_b-c123456", "a_b-c123456"},
		{"https://www.youtube.com/embed/XYZ98765432", "XYZ98765432"},
		{"https://www.youtube.com/watch?v=short", ""},
		{"https://www.youtube.com/channel/UC123", ""},
		{"https://example.com/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, VideoID(tt.url))
		})
	}
}

const sampleVTT = "WEBVTT\nKind: captions\nLanguage: en\n\n00:00:00.000 --> 00:00:02.000\nwelcome to the show\n\n00:00:02.000 --> 00:00:04.000\nwelcome to the show\ntoday we talk caches\n"

func TestYouTubeStrategy_Success(t *testing.T) {
	captions := &mockCaptionSource{captionsFunc: func(ctx context.Context, id string) (string, error) {
		assert.Equal(t, "abc12345678", id)
		return sampleVTT, nil
	}}
	s := NewYouTubeStrategy(captions, nil)

	result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://youtu.be/abc12345678", Title: "Episode"})

	yt, ok := result.(domain.YouTubeResult)
	require.True(t, ok)
	assert.Equal(t, "abc12345678", yt.VideoID)
	assert.Equal(t, "welcome to the show today we talk caches", yt.Text)
	assert.Equal(t, "Episode", yt.Title)
}

func TestYouTubeStrategy_NoVideoIDSkipsIO(t *testing.T) {
	captions := &mockCaptionSource{}
	s := NewYouTubeStrategy(captions, nil)

	o := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://www.youtube.com/watch?v=nope"}).Summary()

	assert.Equal(t, msgNoVideoID, o.Error)
	assert.Equal(t, 0, captions.calls)
}

func TestYouTubeStrategy_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(ctx context.Context, id string) (string, error)
		wantErr string
	}{
		{"no captions", func(ctx context.Context, id string) (string, error) { return "", interfaces.ErrNoCaptions }, msgNoTranscript},
		{"wrapped no captions", func(ctx context.Context, id string) (string, error) {
			return "", fmt.Errorf("yt-dlp: %w", interfaces.ErrNoCaptions)
		}, msgNoTranscript},
		{"only headers", func(ctx context.Context, id string) (string, error) { return "WEBVTT\nKind: captions\n\n", nil }, msgNoTranscript},
		{"tool failure", func(ctx context.Context, id string) (string, error) { return "", fmt.Errorf("exit status 1") }, "Could not fetch transcript: exit status 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewYouTubeStrategy(&mockCaptionSource{captionsFunc: tt.fn}, nil)
			result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://youtu.be/abc12345678"})
			assert.Equal(t, domain.KindYouTube, result.Kind())
			assert.Equal(t, "", result.Summary().Text)
			assert.Equal(t, tt.wantErr, result.Summary().Error)
		})
	}
}

func TestBlueskyStrategy_Success(t *testing.T) {
	client := &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		assert.True(t, strings.HasPrefix(url, "https://api.test/xrpc/app.bsky.feed.getPostThread?uri="))
		assert.Contains(t, url, "at%3A%2F%2Falice.test%2Fapp.bsky.feed.post%2Fxyz")
		assert.True(t, strings.HasSuffix(url, "&depth=0"))
		return &mockResponse{statusCode: 200, body: `{"thread":{"post":{"record":{"text":"hello from the sky"}}}}`}, nil
	}}
	s := NewBlueskyStrategy(client, "https://api.test/", nil, nil)

	result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://bsky.app/profile/alice.test/post/xyz", Title: "Alice"})

	bs, ok := result.(domain.BlueskyResult)
	require.True(t, ok)
	assert.Equal(t, "hello from the sky", bs.Text)
	assert.Equal(t, "Alice", bs.Title)
	assert.Equal(t, "alice.test", bs.Handle)
	assert.Equal(t, "xyz", bs.PostID)
}

func TestBlueskyStrategy_UnparseableURL(t *testing.T) {
	client := &mockHTTPClient{}
	s := NewBlueskyStrategy(client, "", nil, nil)

	result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://bsky.app/profile/alice.test"})

	assert.Equal(t, domain.KindBluesky, result.Kind())
	assert.Equal(t, msgBlueskyParse, result.Summary().Error)
	assert.Empty(t, client.calls)
}

func TestBlueskyStrategy_FallsBackToArticle(t *testing.T) {
	client := &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 400, body: `{"error":"InvalidRequest"}`}, nil
	}}
	article := NewArticleStrategy(&mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 502}, nil
	}}, nil)
	s := NewBlueskyStrategy(client, "https://api.test", article, nil)

	result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://bsky.app/profile/alice.test/post/xyz"})

	assert.Equal(t, domain.KindArticle, result.Kind())
	assert.Equal(t, "Could not fetch article: HTTP 502", result.Summary().Error)
}

func TestBlueskyStrategy_FallbackSucceeds(t *testing.T) {
	client := &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
		return &mockResponse{statusCode: 500}, nil
	}}
	article := NewArticleStrategy(&mockHTTPClient{getFunc: okPage(articlePage)}, nil)
	s := NewBlueskyStrategy(client, "https://api.test", article, nil)

	result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://bsky.app/profile/alice.test/post/xyz"})

	assert.Equal(t, domain.KindArticle, result.Kind())
	assert.True(t, result.Summary().OK())
}

func TestBlueskyStrategy_DomainErrors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *mockResponse
		err     error
		wantErr string
	}{
		{"missing text", &mockResponse{statusCode: 200, body: `{"thread":{"post":{"record":{}}}}`}, nil, msgBlueskyNoText},
		{"not found thread", &mockResponse{statusCode: 200, body: `{"thread":{"$type":"app.bsky.feed.defs#notFoundPost"}}`}, nil, msgBlueskyNoText},
		{"bad json", &mockResponse{statusCode: 200, body: `{"thread":`}, nil, "Error fetching Bluesky post: unexpected EOF"},
		{"transport", nil, fmt.Errorf("dial tcp: refused"), "Error fetching Bluesky post: dial tcp: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockHTTPClient{getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return tt.resp, nil
			}}
			s := NewBlueskyStrategy(client, "https://api.test", nil, nil)
			result := s.Extract(context.Background(), domain.ExtractionRequest{URL: "https://bsky.app/profile/a.test/post/1"})
			assert.Equal(t, domain.KindBluesky, result.Kind())
			assert.Equal(t, tt.wantErr, result.Summary().Error)
		})
	}
}

func TestPodcastStrategy(t *testing.T) {
	result := PodcastStrategy{}.Extract(context.Background(), domain.ExtractionRequest{URL: "https://pod.test/ep/7", Title: "Ep 7"})

	p, ok := result.(domain.PodcastResult)
	require.True(t, ok)
	assert.Equal(t, "https://pod.test/ep/7", p.FallbackURL)
	assert.Equal(t, "", p.Text)
	assert.Equal(t, msgPodcast, p.Error)
}
