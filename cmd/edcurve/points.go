package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/edcurve/pkg/edwards"
	"github.com/mahdiidarabi/edcurve/pkg/scalar"
)

// decodeHex32 parses a 32-byte hex argument, with or without a 0x prefix.
func decodeHex32(what, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", what)
	}
	if len(b) != 32 {
		return nil, errors.Errorf("%s must be 32 bytes, got %d", what, len(b))
	}
	return b, nil
}

func basemulCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "basemul <scalar-hex>",
		Short: "Multiply the Ed25519 basepoint by a little-endian scalar",
		Long: `Computes k*B for a 32-byte little-endian scalar k and prints the compressed
Edwards point and its Montgomery u-coordinate. By default k must be below the
group order; --reduce accepts any value and reduces it, --clamp applies the
RFC 8032 private key clamping first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := decodeHex32("scalar", args[0])
			if err != nil {
				return err
			}

			var k *scalar.Scalar
			switch {
			case v.GetBool("basemul.clamp"):
				k, err = scalar.NewScalar().SetBytesWithClamping(b)
			default:
				k, err = scalar.FromBytes(b, v.GetBool("basemul.reduce"))
			}
			if err != nil {
				return errors.Wrap(err, "invalid scalar")
			}

			p := new(edwards.ExtendedPoint).ScalarBaseMult(k)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scalar:     %x\n", k.Bytes())
			fmt.Fprintf(out, "point:      %s\n", p.Compress())
			fmt.Fprintf(out, "montgomery: %s\n", p.ToMontgomery())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Bool("reduce", false, "Reduce the scalar modulo the group order instead of rejecting it")
	flags.Bool("clamp", false, "Clamp the scalar as an Ed25519 private key")
	v.BindPFlag("basemul.reduce", flags.Lookup("reduce"))
	v.BindPFlag("basemul.clamp", flags.Lookup("clamp"))
	return cmd
}

func yesNo(b int) string {
	if b == 1 {
		return "yes"
	}
	return "no"
}

func inspectCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <point-hex>",
		Short: "Decode a compressed Edwards point and report its properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := decodeHex32("point", args[0])
			if err != nil {
				return err
			}
			var c edwards.CompressedPoint
			copy(c[:], b)
			p, err := c.Decompress()
			if err != nil {
				return errors.Wrapf(err, "cannot decode %s", c)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "point:        %s\n", p.Compress())
			fmt.Fprintf(out, "on curve:     %s\n", yesNo(p.IsValid()))
			fmt.Fprintf(out, "identity:     %s\n", yesNo(p.IsIdentity()))
			fmt.Fprintf(out, "small order:  %s\n", yesNo(p.IsSmallOrder()))
			fmt.Fprintf(out, "torsion free: %s\n", yesNo(p.IsTorsionFree()))
			fmt.Fprintf(out, "montgomery:   %s\n", p.ToMontgomery())

			if v.GetBool("inspect.dump") {
				X, Y, Z, T := p.ExtendedCoordinates()
				cs := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
				fmt.Fprintln(out, "extended coordinates (radix 2^51 limbs):")
				cs.Fdump(out, map[string]interface{}{"X": *X, "Y": *Y, "Z": *Z, "T": *T})
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.Bool("dump", false, "Dump the extended coordinates limb by limb")
	v.BindPFlag("inspect.dump", flags.Lookup("dump"))
	return cmd
}

func x25519Cmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "x25519 <scalar-hex> [u-hex]",
		Short: "Compute X25519(k, u) with the Montgomery ladder",
		Long: `Computes the RFC 7748 X25519 function. The scalar is clamped; u defaults
to the basepoint 9, which makes the output the public key of k.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := decodeHex32("scalar", args[0])
			if err != nil {
				return err
			}
			u := edwards.MontgomeryPoint{9}
			if len(args) == 2 {
				ub, err := decodeHex32("u-coordinate", args[1])
				if err != nil {
					return err
				}
				copy(u[:], ub)
			}

			var k [32]byte
			copy(k[:], kb)
			fmt.Fprintln(cmd.OutOrStdout(), u.MulClamped(&k))
			return nil
		},
	}
}
