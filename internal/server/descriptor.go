package server

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// File describes AnalysisService for server reflection. It is built at init
// from a hand-written FileDescriptorProto and registered in
// protoregistry.GlobalFiles under AnalysisServiceDesc.Metadata.
var File protoreflect.FileDescriptor

func init() {
	fd, err := protodesc.NewFile(analysisFileProto(), protoregistry.GlobalFiles)
	if err != nil {
		panic("server: build descriptor: " + err.Error())
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic("server: register descriptor: " + err.Error())
	}
	File = fd
}

func analysisFileProto() *descriptorpb.FileDescriptorProto {
	method := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(in),
			OutputType: proto.String(out),
		}
	}
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(AnalysisServiceDesc.Metadata.(string)),
		Package: proto.String("textstruct.v1"),
		Syntax:  proto.String("proto3"),
		Dependency: []string{
			"google/protobuf/struct.proto",
			"google/protobuf/wrappers.proto",
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("AnalysisService"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("Analyze", ".google.protobuf.Struct", ".google.protobuf.Struct"),
				method("ExportXLSX", ".google.protobuf.Struct", ".google.protobuf.BytesValue"),
			},
		}},
	}
}
