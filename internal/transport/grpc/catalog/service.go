// Package catalog exposes the catalog as the gRPC service
// catalog.v1.CatalogService. Requests and replies are google.protobuf.Struct
// values carrying the same JSON shapes as the HTTP API.
package catalog

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "catalog.v1.CatalogService"

// CatalogServiceServer is the server API for CatalogService.
type CatalogServiceServer interface {
	ListProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveBrandNames(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveProductCategories(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error)

var methods = map[string]unaryMethod{
	"ListProducts": func(s CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return s.ListProducts
	},
	"GetProduct": func(s CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return s.GetProduct
	},
	"CreateProduct": func(s CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return s.CreateProduct
	},
	"UpdateProduct": func(s CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return s.UpdateProduct
	},
	"DeleteProduct": func(s CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return s.DeleteProduct
	},
	"ResolveBrandNames": func(s CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return s.ResolveBrandNames
	},
	"ResolveProductCategories": func(s CatalogServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
		return s.ResolveProductCategories
	},
}

// methodNames fixes the descriptor order.
var methodNames = []string{
	"ListProducts",
	"GetProduct",
	"CreateProduct",
	"UpdateProduct",
	"DeleteProduct",
	"ResolveBrandNames",
	"ResolveProductCategories",
}

// ServiceDesc is the grpc.ServiceDesc for CatalogService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods:     methodDescs(),
	Streams:     []grpc.StreamDesc{},
	Metadata:    "catalog/v1/catalog.proto",
}

func methodDescs() []grpc.MethodDesc {
	descs := make([]grpc.MethodDesc, 0, len(methodNames))
	for _, name := range methodNames {
		descs = append(descs, grpc.MethodDesc{
			MethodName: name,
			Handler:    unaryHandler(name, methods[name]),
		})
	}
	return descs
}

func unaryHandler(name string, method unaryMethod) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		call := method(srv.(CatalogServiceServer))
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + name,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// RegisterCatalogServiceServer registers srv on s.
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls CatalogService methods.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a Client on cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with in and returns the reply.
func (c *Client) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
