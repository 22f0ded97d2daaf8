package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Quiz submission attempts by result",
		},
		[]string{"result"},
	)

	QuizSubmissionScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_submission_score",
			Help:    "Percentage score of accepted quiz submissions",
			Buckets: []float64{0, 20, 40, 60, 80, 100},
		},
	)

	DiscussionPosts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "discussion_posts_total",
			Help: "Total number of discussion posts created",
		},
	)

	PostLikeToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "post_like_toggles_total",
			Help: "Post like toggles by action",
		},
		[]string{"action"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(QuizSubmissions)
		prometheus.MustRegister(QuizSubmissionScore)
		prometheus.MustRegister(DiscussionPosts)
		prometheus.MustRegister(PostLikeToggles)
	})
}

// RecordSubmission result 取值 accepted / rejected
func RecordSubmission(result string, score float64) {
	QuizSubmissions.WithLabelValues(result).Inc()
	if result == "accepted" {
		QuizSubmissionScore.Observe(score)
	}
}

func RecordPost() {
	DiscussionPosts.Inc()
}

func RecordLikeToggle(action string) {
	PostLikeToggles.WithLabelValues(action).Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
