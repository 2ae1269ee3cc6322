package client

import (
	"github.com/opentok/opentok-go/pkg/api"
)

// Request and response types are shared with the api package.
type (
	Session          = api.SessionInfo
	SessionOptions   = api.SessionOptions
	Archive          = api.Archive
	ArchiveList      = api.ArchiveList
	ArchiveOptions   = api.ArchiveOptions
	ArchiveFilter    = api.ArchiveFilter
	Broadcast        = api.Broadcast
	BroadcastOptions = api.BroadcastOptions
	BroadcastOutputs = api.BroadcastOutputs
	HLSOutput        = api.HLSOutput
	RTMPOutput       = api.RTMPOutput
	Layout           = api.Layout
	LayoutType       = api.LayoutType
	LayoutResource   = api.LayoutResource
	Stream           = api.Stream
	StreamList       = api.StreamList
	StreamProperties = api.StreamProperties
	StreamClassList  = api.StreamClassList
	SignalPayload    = api.SignalPayload
	DialOptions      = api.DialOptions
	SipAuth          = api.SipAuth
	SipCall          = api.SipCall
	MediaMode        = api.MediaMode
	ArchiveMode      = api.ArchiveMode
	OutputMode       = api.OutputMode
	StreamMode       = api.StreamMode
)

const (
	MediaModeRouted  = api.MediaModeRouted
	MediaModeRelayed = api.MediaModeRelayed

	ArchiveModeManual = api.ArchiveModeManual
	ArchiveModeAlways = api.ArchiveModeAlways

	OutputModeComposed   = api.OutputModeComposed
	OutputModeIndividual = api.OutputModeIndividual

	StreamModeAuto   = api.StreamModeAuto
	StreamModeManual = api.StreamModeManual

	LayoutBestFit                = api.LayoutTypeBestFit
	LayoutCustom                 = api.LayoutTypeCustom
	LayoutHorizontalPresentation = api.LayoutTypeHorizontalPresentation
	LayoutPip                    = api.LayoutTypePip
	LayoutVerticalPresentation   = api.LayoutTypeVerticalPresentation

	LayoutResourceBroadcast = api.LayoutResourceBroadcast
	LayoutResourceArchive   = api.LayoutResourceArchive
)
