// Package rpc exposes the decoder over gRPC without any protoc-generated
// stubs: decoder.proto (embedded below) is parsed at process start with
// protoreflect/protoparse, converted to the google.golang.org/protobuf
// descriptor representation, and served with dynamicpb messages. A
// companion Describe function walks the same descriptor for a
// human-readable debug dump, exercising protoreflect independent of the
// gRPC server itself.
package rpc

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jhump/protoreflect/desc/protoparse"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/mikegtech/insbridge-decoder/internal/config"
	"github.com/mikegtech/insbridge-decoder/internal/entities"
	"github.com/mikegtech/insbridge-decoder/internal/opcode"
	"github.com/mikegtech/insbridge-decoder/internal/parser"
	"github.com/mikegtech/insbridge-decoder/internal/render"
)

//go:embed decoder.proto
var protoSource string

const protoFileName = "decoder.proto"

// Descriptor holds the parsed, google-protobuf-native view of
// decoder.proto: the file descriptor plus the three symbols the service
// and Describe both need.
type Descriptor struct {
	File            protoreflect.FileDescriptor
	Service         protoreflect.ServiceDescriptor
	RequestMessage  protoreflect.MessageDescriptor
	ResponseMessage protoreflect.MessageDescriptor
}

// LoadDescriptor parses the embedded proto source and resolves it against
// google.golang.org/protobuf's reflection types, bridging jhump's parse
// tree (protoparse's own FileDescriptorProto) into the protoreflect API
// dynamicpb requires.
func LoadDescriptor() (*Descriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{
			protoFileName: protoSource,
		}),
	}
	fds, err := parser.ParseFiles(protoFileName)
	if err != nil {
		return nil, fmt.Errorf("rpc: parsing %s: %w", protoFileName, err)
	}
	if len(fds) == 0 {
		return nil, fmt.Errorf("rpc: %s produced no file descriptors", protoFileName)
	}
	fdProto := fds[0].AsFileDescriptorProto()

	file, err := protodesc.NewFile(fdProto, protoregistry.GlobalFiles)
	if err != nil {
		return nil, fmt.Errorf("rpc: converting %s to a protoreflect file: %w", protoFileName, err)
	}

	svc := file.Services().ByName("DecoderService")
	if svc == nil {
		return nil, fmt.Errorf("rpc: %s has no DecoderService", protoFileName)
	}
	reqMsg := file.Messages().ByName("DecodeRequest")
	respMsg := file.Messages().ByName("DecodeResponse")
	if reqMsg == nil || respMsg == nil {
		return nil, fmt.Errorf("rpc: %s is missing DecodeRequest/DecodeResponse", protoFileName)
	}

	return &Descriptor{File: file, Service: svc, RequestMessage: reqMsg, ResponseMessage: respMsg}, nil
}

// Describe renders a plain-text summary of every service, method, and
// message field in the descriptor — the debug tool cmd/ratedecode-rpc's
// "describe" subcommand prints, built entirely from protoreflect without
// touching the decoder itself.
func Describe(d *Descriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "file: %s\n", d.File.Path())
	fmt.Fprintf(&b, "package: %s\n", d.File.Package())

	fmt.Fprintf(&b, "service %s:\n", d.Service.Name())
	methods := d.Service.Methods()
	for i := 0; i < methods.Len(); i++ {
		m := methods.Get(i)
		fmt.Fprintf(&b, "  rpc %s(%s) returns (%s)\n", m.Name(), m.Input().Name(), m.Output().Name())
	}

	for _, msg := range []protoreflect.MessageDescriptor{d.RequestMessage, d.ResponseMessage} {
		fmt.Fprintf(&b, "message %s:\n", msg.Name())
		fields := msg.Fields()
		for i := 0; i < fields.Len(); i++ {
			f := fields.Get(i)
			fmt.Fprintf(&b, "  %s %s = %d\n", f.Kind(), f.Name(), f.Number())
		}
	}
	return b.String()
}

// Server implements DecoderService.DecodeInstruction by parsing and
// rendering a single instruction through the same decoder used by the
// tree driver, with no program-version scope (a standalone lookup has no
// enclosing algorithm to resolve GI/PC/GR-family tokens against).
type Server struct {
	descriptor *Descriptor
	renderer   *render.Renderer
}

// NewServer builds a Server around an already-loaded Renderer.
func NewServer(d *Descriptor, r *render.Renderer) *Server {
	return &Server{descriptor: d, renderer: r}
}

// Register installs the dynamic DecoderService onto a grpc.Server. Since
// there are no generated _grpc.pb.go stubs, the ServiceDesc is built by
// hand here, with Methods pointing at a handler that unmarshals into (and
// marshals out of) dynamicpb messages built from the parsed descriptor.
func (s *Server) Register(gs *grpc.Server) {
	desc := grpc.ServiceDesc{
		ServiceName: string(s.descriptor.Service.FullName()),
		HandlerType: (*any)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "DecodeInstruction",
				Handler:    s.decodeInstructionHandler,
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: protoFileName,
	}
	gs.RegisterService(&desc, s)
}

func (s *Server) decodeInstructionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	req := dynamicpb.NewMessage(s.descriptor.RequestMessage)
	if err := dec(req); err != nil {
		return nil, fmt.Errorf("rpc: decoding request: %w", err)
	}

	handle := func(_ context.Context, _ any) (any, error) {
		return s.decode(req), nil
	}
	if interceptor == nil {
		return handle(ctx, req)
	}
	return interceptor(ctx, req, &grpcInfo, handle)
}

var grpcInfo = grpc.UnaryServerInfo{FullMethod: "/ratedecode.v1.DecoderService/DecodeInstruction"}

// seqField turns a DecodeRequest's seq_true/seq_false int32 (0 when the
// caller left it unset, since proto3 has no presence tracking on plain
// scalars here) into the *int form parser.Instruction expects, where nil
// means "no jump wired" and a non-nil value is a step number.
func seqField(v int64) *int {
	if v <= 0 {
		return nil
	}
	step := int(v)
	return &step
}

func (s *Server) decode(req *dynamicpb.Message) *dynamicpb.Message {
	fields := s.descriptor.RequestMessage.Fields()
	opcodeNum := int(req.Get(fields.ByName("opcode")).Int())
	body := req.Get(fields.ByName("body")).String()
	target := req.Get(fields.ByName("target")).String()
	hasTarget := req.Get(fields.ByName("has_target")).Bool()

	p := parser.Instruction{
		Step:      0,
		Opcode:    opcodeNum,
		Body:      body,
		Target:    target,
		HasTarget: hasTarget,
		SeqTrue:   seqField(req.Get(fields.ByName("seq_true")).Int()),
		SeqFalse:  seqField(req.Get(fields.ByName("seq_false")).Int()),
	}
	nodes := parser.Parse(p, entities.Scope(nil), nil)

	var english []string
	for _, n := range nodes {
		english = append(english, s.renderer.Render(n, nil))
	}

	resp := dynamicpb.NewMessage(s.descriptor.ResponseMessage)
	rf := s.descriptor.ResponseMessage.Fields()
	resp.Set(rf.ByName("step_type"), protoreflect.ValueOfString(s.renderer.StepType(opcode.Classify(opcodeNum).String())))
	resp.Set(rf.ByName("english"), protoreflect.ValueOfString(strings.Join(english, " ")))
	resp.Set(rf.ByName("opcode_table_version"), protoreflect.ValueOfString(config.OpcodeTableVersion))
	return resp
}
