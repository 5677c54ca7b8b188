package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector HTTP 指标收集器
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

var (
	globalCollector *Collector
	collectorOnce   sync.Once
	gaugeOnce       sync.Once
)

// GetGlobalCollector 获取全局指标收集器
func GetGlobalCollector() *Collector {
	collectorOnce.Do(func() {
		globalCollector = &Collector{
			httpRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "endpoint", "status"},
			),
			httpRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "endpoint"},
			),
		}
	})
	return globalCollector
}

// RecordRequest 记录一次 HTTP 请求
func (c *Collector) RecordRequest(method, endpoint string, status int, cost time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(cost.Seconds())
}

// StoreStats 存储中各实体的数量
type StoreStats struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
}

// RegisterStoreStats 注册实体数量指标，抓取时调用 fn 读取当前值
func RegisterStoreStats(fn func() StoreStats) {
	gaugeOnce.Do(func() {
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "store_users_total",
			Help: "Number of users in the store",
		}, func() float64 { return float64(fn().Users) })
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "store_posts_total",
			Help: "Number of posts in the store",
		}, func() float64 { return float64(fn().Posts) })
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "store_comments_total",
			Help: "Number of comments in the store",
		}, func() float64 { return float64(fn().Comments) })
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "store_likes_total",
			Help: "Number of likes in the store",
		}, func() float64 { return float64(fn().Likes) })
	})
}
