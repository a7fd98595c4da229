package grpc

import (
	"log"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer 对外暴露 gRPC 健康检查端点，供外部探针确认 bot 存活。
// 在 gateway session 打开之前报告 NOT_SERVING。
type HealthServer struct {
	server *grpc.Server
	health *health.Server
}

// NewHealthServer 创建健康检查服务。
func NewHealthServer() *HealthServer {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	return &HealthServer{server: srv, health: hs}
}

// Start 在指定地址上开始监听。
func (h *HealthServer) Start(address string) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	go func() {
		if err := h.server.Serve(lis); err != nil {
			log.Printf("gRPC health server stopped: %v", err)
		}
	}()
	log.Printf("gRPC health server listening on %s", address)
	return nil
}

// SetServing 切换整体服务状态。
func (h *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
}

// Stop 优雅关闭 gRPC 服务。
func (h *HealthServer) Stop() {
	h.server.GracefulStop()
}
