// Package grpc provides gRPC server interceptors for token authentication.
//
// Unary and streaming interceptors read "authorization: Bearer <token>" from
// incoming metadata, check it with the shared core, and attach the identity
// to the handler context.
//
// # Basic Usage
//
//	import (
//	    jwtgrpc "github.com/signedtoken/jwtauth/integrations/grpc"
//	    "github.com/signedtoken/jwtauth/token"
//	    "google.golang.org/grpc"
//	)
//
//	func main() {
//	    cfg, err := token.NewConfig(os.Getenv("JWT_SECRET"), "24h")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    verifier, err := token.NewVerifier(cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    interceptor, err := jwtgrpc.New(
//	        jwtgrpc.WithVerifier(verifier),
//	        jwtgrpc.WithExcludedMethods("/grpc.health.v1.Health/Check"),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    server := grpc.NewServer(
//	        grpc.UnaryInterceptor(interceptor.UnaryServerInterceptor()),
//	        grpc.StreamInterceptor(interceptor.StreamServerInterceptor()),
//	    )
//	    // Register services and serve.
//	}
//
// # Errors
//
// Rejections become status errors with codes.Unauthenticated and the same
// messages the HTTP middleware uses: "You must be logged in",
// "Token expired", "Invalid token" or "Invalid token or error occurred".
//
// # Identity Retrieval
//
//	func (s *server) GetUser(ctx context.Context, req *pb.GetUserRequest) (*pb.User, error) {
//	    identity, err := jwtgrpc.GetIdentity(ctx)
//	    if err != nil {
//	        return nil, status.Error(codes.Internal, "no identity")
//	    }
//	    return &pb.User{Id: fmt.Sprint(identity["id"])}, nil
//	}
package grpc
