// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package c2pb defines the graph interchange format: the NetDef, OperatorDef,
// Argument, DeviceOption and TensorProto messages, a protobuf wire codec for
// them, and a text rendering for debugging.
//
// # Overview
//
// This package contains:
//   - Hand-written message structs mirroring the Caffe2 graph schema
//   - Binary serialization: MarshalNetDef, UnmarshalNetDef and friends
//   - Text-format rendering: FormatNetDef, FormatOperatorDef
//   - Float16 tensor payload packing via PackFloat16/UnpackFloat16
//
// # Basic Usage
//
//	net := &c2pb.NetDef{Name: "example"}
//	net.Op = append(net.Op, &c2pb.OperatorDef{
//	    Type:   "Relu",
//	    Input:  []string{"x"},
//	    Output: []string{"y"},
//	})
//
//	data := c2pb.MarshalNetDef(net)
//	back, err := c2pb.UnmarshalNetDef(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(c2pb.FormatNetDef(back))
//
// Scalar argument fields use pointers so that zero values survive a round
// trip; build arguments with the core package's MakeArgument rather than by
// hand.
package c2pb
