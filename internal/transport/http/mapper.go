package http

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/sobachat/sobachat-server/internal/core"
	"github.com/sobachat/sobachat-server/internal/proto"
)

// inboundToCommand translates a wire envelope into a core command. Only
// envelope-level problems (bad JSON, unknown type) produce a protocol
// error; domain-level validation stays silent and is left to the core.
func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var data proto.JoinData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed(err)
		}
		return &core.Command{
			Kind:     core.CommandJoin,
			Room:     data.Room,
			Username: data.Username,
		}, nil
	case proto.InboundTypeUpdateProfile:
		var data proto.UpdateProfileData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed(err)
		}
		return &core.Command{
			Kind: core.CommandUpdateProfile,
			Room: data.Room,
			Profile: core.ProfileUpdate{
				Username:    data.Username,
				NameColor:   data.NameColor,
				BubbleColor: data.BubbleColor,
				AvatarURL:   data.AvatarURL,
			},
		}, nil
	case proto.InboundTypeChatMessage:
		var data proto.ChatMessageData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed(err)
		}
		return &core.Command{
			Kind: core.CommandChatMessage,
			Room: data.Room,
			Text: data.Msg,
		}, nil
	case proto.InboundTypeSwitchRoom:
		var data proto.SwitchRoomData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed(err)
		}
		return &core.Command{
			Kind:    core.CommandSwitchRoom,
			OldRoom: data.OldRoom,
			NewRoom: data.NewRoom,
		}, nil
	case proto.InboundTypeDisconnectRequest:
		var data proto.DisconnectRequestData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, malformed(err)
		}
		return &core.Command{
			Kind: core.CommandLeaveRoom,
			Room: data.Room,
		}, nil
	case proto.InboundTypeGetRoomStats:
		return &core.Command{Kind: core.CommandRoomStats}, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}
	}
}

func malformed(err error) *proto.Error {
	return &proto.Error{Code: "malformed_data", Msg: err.Error()}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventSystem:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventSystem,
			Data: proto.EventSystemData{
				Room: event.Room,
				Msg:  event.Text,
			},
		}
	case core.EventChatMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChatMessage,
			Data: proto.EventChatMessageData{
				SID:  event.From.ConnID,
				Room: event.Room,
				Msg:  event.Text,
				User: userProfile(event.From),
			},
		}
	case core.EventUserList:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventUserList,
			Data: proto.EventUserListData{
				Room:  event.Room,
				Users: lo.Map(event.Users, func(p core.Participant, _ int) proto.UserProfile {
					return userProfile(p)
				}),
			},
		}
	case core.EventRoomStats:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomStats,
			Data: proto.EventRoomStatsData{
				Stats: event.Stats,
			},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func userProfile(p core.Participant) proto.UserProfile {
	return proto.UserProfile{
		SID:         p.ConnID,
		Username:    p.Username,
		NameColor:   p.NameColor,
		BubbleColor: p.BubbleColor,
		AvatarURL:   p.AvatarURL,
	}
}
