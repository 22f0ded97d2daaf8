package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDomainMetrics(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(QuizSubmissions.WithLabelValues("accepted"))
	RecordSubmission("accepted", 50)
	assert.Equal(t, before+1, testutil.ToFloat64(QuizSubmissions.WithLabelValues("accepted")))

	liked := testutil.ToFloat64(PostLikeToggles.WithLabelValues("liked"))
	RecordLikeToggle("liked")
	assert.Equal(t, liked+1, testutil.ToFloat64(PostLikeToggles.WithLabelValues("liked")))

	posts := testutil.ToFloat64(DiscussionPosts)
	RecordPost()
	assert.Equal(t, posts+1, testutil.ToFloat64(DiscussionPosts))
}
