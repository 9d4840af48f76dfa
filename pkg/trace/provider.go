// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/pulse/pkg/log"
	"github.com/go-arcade/pulse/pkg/version"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// 默认 sampler：总是采样，确保所有 span 都有有效的 trace ID
var defaultSampler = sdktrace.AlwaysSample()

// Conf Trace 配置
type Conf struct {
	// Enabled 是否启用 trace
	Enabled bool `mapstructure:"enabled"`
	// Endpoint OTLP 端点地址（如：http://localhost:4318 或 localhost:4317）
	Endpoint string `mapstructure:"endpoint"`
	// Protocol 协议类型：grpc 或 http
	Protocol string `mapstructure:"protocol"`
	// ServiceName 服务名称
	ServiceName string `mapstructure:"serviceName"`
	// Insecure 是否使用不安全连接（TLS）
	Insecure bool `mapstructure:"insecure"`
	// Headers 额外的 HTTP 头（仅用于 HTTP 协议）
	Headers map[string]string `mapstructure:"headers"`
	// BatchTimeout 批量发送超时时间（秒）
	BatchTimeout int `mapstructure:"batchTimeout"`
	// ExportTimeout 导出超时时间（秒）
	ExportTimeout int `mapstructure:"exportTimeout"`
}

// SetDefaults 设置默认值
func (c *Conf) SetDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "pulse"
	}
	if c.Protocol == "" {
		c.Protocol = "grpc"
	}
	if c.BatchTimeout == 0 {
		c.BatchTimeout = 5
	}
	if c.ExportTimeout == 0 {
		c.ExportTimeout = 30
	}
	if c.Endpoint == "" {
		if c.Protocol == "grpc" {
			c.Endpoint = "localhost:4317"
		} else {
			c.Endpoint = "localhost:4318"
		}
	}
}

// InitTracerProvider 初始化 TracerProvider
// 未启用时返回不导出的 TracerProvider，span 仍带有效的 trace ID，用于日志关联
func InitTracerProvider(ctx context.Context, conf Conf) (*sdktrace.TracerProvider, func(), error) {
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	if !conf.Enabled {
		tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(defaultSampler))
		otel.SetTracerProvider(tp)
		return tp, func() {}, nil
	}

	conf.SetDefaults()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(conf.ServiceName),
			semconv.ServiceVersionKey.String(version.GetVersion().Version),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create resource: %w", err)
	}

	exporter, err := createExporter(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(time.Duration(conf.BatchTimeout)*time.Second),
			sdktrace.WithExportTimeout(time.Duration(conf.ExportTimeout)*time.Second),
		),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(defaultSampler),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		shutdownTimeout := min(max(time.Duration(conf.ExportTimeout)*time.Second+5*time.Second, 10*time.Second), 30*time.Second)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Warnw("tracer provider shutdown timed out", "timeout", shutdownTimeout)
				return
			}
			log.Errorw("failed to shutdown tracer provider", "error", err)
		}
	}

	return tp, cleanup, nil
}

// createExporter 创建 exporter
func createExporter(ctx context.Context, conf Conf) (sdktrace.SpanExporter, error) {
	switch conf.Protocol {
	case "grpc":
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(conf.Endpoint)}
		if conf.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		if conf.ExportTimeout > 0 {
			opts = append(opts, otlptracegrpc.WithTimeout(time.Duration(conf.ExportTimeout)*time.Second))
		}
		return otlptrace.New(ctx, otlptracegrpc.NewClient(opts...))
	case "http":
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(conf.Endpoint)}
		if conf.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		if len(conf.Headers) > 0 {
			opts = append(opts, otlptracehttp.WithHeaders(conf.Headers))
		}
		if conf.ExportTimeout > 0 {
			opts = append(opts, otlptracehttp.WithTimeout(time.Duration(conf.ExportTimeout)*time.Second))
		}
		return otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
	default:
		return nil, fmt.Errorf("unsupported protocol: %s", conf.Protocol)
	}
}
